package models

import (
	"time"

	"greenjourney/internal/domain"
)

// PendingBooking is a priced selection waiting for payment.
type PendingBooking struct {
	ID              string          `json:"id"`
	UserID          int64           `json:"user_id"`
	JourneyID       int64           `json:"journey_id"`
	Origin          string          `json:"origin"`
	Destination     string          `json:"destination"`
	Mode            string          `json:"mode"`
	Description     string          `json:"description"`
	PricePerPerson  float64         `json:"price"`
	CO2Emissions    float64         `json:"carbon_footprint"`
	TravelTime      string          `json:"duration"`
	StudentDiscount bool            `json:"student_discount"`
	Passengers      int             `json:"passengers"`
	TripType        domain.TripType `json:"journey_type"`
	DepartureDate   time.Time       `json:"departure_date"`
	ReturnDate      *time.Time      `json:"return_date,omitempty"`
	TotalPrice      float64         `json:"total_price"`
	CreatedAt       time.Time       `json:"created_at"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

// Expired reports whether the selection can no longer be paid for.
func (p PendingBooking) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}
