package handlers

import (
	"net/http"

	"greenjourney/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPending(c *gin.Context) {
	p, err := h.bookings(c).Pending(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) PayPending(c *gin.Context) {
	var req services.PaymentDetails
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.bookings(c)
	b, err := svc.Pay(c.Request.Context(), currentUser(c), c.Param("id"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	view, err := svc.View(currentUser(c), b.TransactionID)
	if err != nil {
		// The booking is stored; fall back to the bare record.
		c.JSON(http.StatusCreated, gin.H{"message": "Payment successful and booking confirmed!", "booking": b})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Payment successful and booking confirmed!", "booking": view})
}

func (h *Handler) GetBooking(c *gin.Context) {
	view, err := h.bookings(c).View(currentUser(c), c.Param("ref"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetBookingTicket returns the e-ticket PDF inline.
func (h *Handler) GetBookingTicket(c *gin.Context) {
	view, err := h.bookings(c).View(currentUser(c), c.Param("ref"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := h.docs(c).GenerateETicket(view)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetBookingReceipt returns the payment receipt PDF inline.
func (h *Handler) GetBookingReceipt(c *gin.Context) {
	view, err := h.bookings(c).View(currentUser(c), c.Param("ref"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pdf, filename, err := h.docs(c).GenerateReceipt(view)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	ref := c.Param("ref")
	if err := h.bookings(c).Cancel(currentUser(c), ref); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking " + ref + " has been cancelled."})
}

func (h *Handler) ModifyBooking(c *gin.Context) {
	var req services.ModifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	view, err := h.bookings(c).Modify(currentUser(c), c.Param("ref"), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully.", "booking": view})
}
