package handlers

import (
	"net/http"

	"greenjourney/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Account(c *gin.Context) {
	summary, err := h.account(c).Summary(currentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username":          middleware.GetUsername(c),
		"upcoming_bookings": summary.UpcomingBookings,
		"past_bookings":     summary.PastBookings,
		"total_co2_saved":   summary.TotalCO2Saved,
		"total_money_saved": summary.TotalMoneySaved,
	})
}
