package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"greenjourney/internal/domain"
	"greenjourney/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Origins(c *gin.Context) {
	origins, err := h.search(c).Origins()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, origins)
}

func (h *Handler) Destinations(c *gin.Context) {
	dest, err := h.search(c).Destinations(c.Param("origin"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dest)
}

// parseSearchQuery reads the search form from the query string.
func parseSearchQuery(c *gin.Context) (services.SearchRequest, error) {
	req := services.SearchRequest{
		Origin:          c.Query("origin"),
		Destination:     c.Query("destination"),
		DepartureDate:   c.Query("departure_date"),
		ReturnDate:      c.Query("return_date"),
		Modes:           c.QueryArray("mode"),
		Passengers:      1,
		StudentDiscount: strings.EqualFold(strings.TrimSpace(c.Query("discount")), "student"),
	}

	if raw := strings.TrimSpace(c.Query("passengers")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return req, domain.ValidationError{Field: "passengers", Msg: "passengers must be a whole number of at least 1"}
		}
		req.Passengers = n
	}

	trip, ok := domain.ParseTripType(c.Query("journey_type"))
	if !ok {
		return req, domain.ValidationError{Field: "journey_type", Msg: "journey_type must be one_way or return"}
	}
	req.TripType = trip

	if raw, present := c.GetQuery("sort"); present && strings.TrimSpace(raw) != "" {
		req.Sort = domain.ParseSortKey(raw)
	} else {
		req.Sort = domain.SortCheapest
	}
	return req, nil
}

func (h *Handler) SearchJourneys(c *gin.Context) {
	req, err := parseSearchQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.search(c).Search(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results":        res.Results,
		"message":        res.Message,
		"origin":         req.Origin,
		"destination":    req.Destination,
		"departure_date": req.DepartureDate,
		"return_date":    req.ReturnDate,
		"passengers":     req.Passengers,
		"journey_type":   req.TripType,
		"sort":           req.Sort,
	})
}

func (h *Handler) SelectJourney(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.SelectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	pending, err := h.bookings(c).Select(c.Request.Context(), currentUser(c), journeyID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pending)
}

func (h *Handler) RebookJourney(c *gin.Context) {
	journeyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	prefill, err := h.bookings(c).Rebook(currentUser(c), journeyID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefill)
}
