package services

import (
	"time"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
	"greenjourney/internal/utils"
)

type AccountService struct {
	BookingRepo repositories.BookingRepository
	Now         func() time.Time
	RequestID   string
}

// Summary splits the user's bookings into upcoming and past and totals the savings of past trips.
func (s AccountService) Summary(userID int64) (models.AccountSummary, error) {
	bookings, err := s.BookingRepo.ListByUser(userID)
	if err != nil {
		utils.LogEvent(s.RequestID, "account", "summary_error", err.Error())
		return models.AccountSummary{}, domain.InternalError{Msg: "failed to load bookings", Err: err}
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return pricing.Summarize(bookings, now), nil
}
