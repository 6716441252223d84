package services

import (
	"fmt"
	"strings"
	"time"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/metrics"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
	"greenjourney/internal/utils"
)

// SearchRequest is the parsed search form. A zero Sort keeps the repository order.
type SearchRequest struct {
	Origin          string
	Destination     string
	DepartureDate   string
	ReturnDate      string
	TripType        domain.TripType
	Passengers      int
	Modes           []string
	Sort            domain.SortKey
	StudentDiscount bool
}

type SearchResult struct {
	Results []models.PricedJourney `json:"results"`
	Message string                 `json:"message,omitempty"`
}

type SearchService struct {
	JourneyRepo repositories.JourneyRepository
	Engine      pricing.Engine
	RequestID   string
}

func (s SearchService) Origins() ([]string, error) {
	out, err := s.JourneyRepo.ListOrigins()
	if err != nil {
		utils.LogEvent(s.RequestID, "search", "origins_error", err.Error())
		return nil, domain.InternalError{Msg: "failed to load origins", Err: err}
	}
	return out, nil
}

func (s SearchService) Destinations(origin string) ([]string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return []string{}, nil
	}
	out, err := s.JourneyRepo.ListDestinations(origin)
	if err != nil {
		utils.LogEvent(s.RequestID, "search", "destinations_error", err.Error())
		return nil, domain.InternalError{Msg: "failed to load destinations", Err: err}
	}
	return out, nil
}

func validateSearch(req SearchRequest) error {
	if req.Origin == "" {
		return domain.ValidationError{Field: "origin", Msg: "Please select an origin."}
	}
	if req.Destination == "" {
		return domain.ValidationError{Field: "destination", Msg: "Please select a destination."}
	}
	if strings.EqualFold(req.Origin, req.Destination) {
		return domain.ValidationError{Field: "destination", Msg: "Origin and Destination cannot be the same. Please select different locations."}
	}
	if req.Passengers < 1 {
		return domain.ValidationError{Field: "passengers", Msg: "passengers must be at least 1"}
	}
	return nil
}

// Search loads the candidate journeys, prices each one with its own promotion draw and ranks them.
func (s SearchService) Search(req SearchRequest) (SearchResult, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	req.Origin = utils.NormalizeSpace(req.Origin)
	req.Destination = utils.NormalizeSpace(req.Destination)
	req.DepartureDate = strings.TrimSpace(req.DepartureDate)
	req.Modes = utils.SplitList(req.Modes...)
	if req.TripType == "" {
		req.TripType = domain.TripOneWay
	}
	if err := validateSearch(req); err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return SearchResult{}, err
	}

	journeys, err := s.JourneyRepo.Search(req.Origin, req.Destination, req.Modes)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		utils.LogEvent(s.RequestID, "search", "search_error", err.Error())
		return SearchResult{}, domain.InternalError{Msg: "failed to search journeys", Err: err}
	}

	priced := make([]models.PricedJourney, 0, len(journeys))
	for _, j := range journeys {
		q := s.Engine.PriceJourney(j, req.TripType, req.StudentDiscount)
		priced = append(priced, models.PricedJourney{
			ID:              j.ID,
			Mode:            j.Mode,
			Route:           fmt.Sprintf("%s to %s by %s", j.Origin, j.Destination, j.Mode),
			Times:           departsText(req.DepartureDate),
			Stops:           "Direct",
			TravelTime:      q.TravelTime,
			DurationMinutes: q.DurationMinutes,
			Cost:            q.Price,
			CO2Emissions:    q.Emissions,
			StudentDiscount: q.DiscountApplied,
			Description:     j.Description,
		})
	}

	out := SearchResult{Results: pricing.Rank(priced, req.Sort)}
	if len(out.Results) == 0 {
		out.Message = fmt.Sprintf("No journeys found from %s to %s. Please try different locations or dates.", req.Origin, req.Destination)
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues("ok").Inc()
	}
	utils.LogEvent(s.RequestID, "search", "search", fmt.Sprintf("%s->%s results=%d", req.Origin, req.Destination, len(out.Results)))
	return out, nil
}

func departsText(date string) string {
	if date == "" {
		date = "any date"
	}
	return fmt.Sprintf("Departs: %s (Time TBD)", date)
}
