package models

import (
	"time"

	"greenjourney/internal/domain"
)

// Booking captures a paid booking as stored in the bookings table.
type Booking struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"user_id"`
	JourneyID       int64                `json:"journey_id"`
	Passengers      int                  `json:"passengers"`
	TotalPrice      float64              `json:"total_price"`
	BookingDate     time.Time            `json:"booking_date"`
	ReturnDate      *time.Time           `json:"return_date,omitempty"`
	TripType        domain.TripType      `json:"journey_type"`
	StudentDiscount bool                 `json:"student_discount"`
	PaymentMethod   string               `json:"payment_method"`
	PaymentStatus   domain.PaymentStatus `json:"payment_status"`
	TransactionID   string               `json:"transaction_id"`
	BookedAt        time.Time            `json:"booked_at"`
}

// BookingView is a booking joined with its journey, as shown on the account,
// confirmation and detail screens.
type BookingView struct {
	Booking
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	Mode               string  `json:"mode"`
	Duration           string  `json:"duration"`
	CarbonFootprint    float64 `json:"carbon_footprint"`
	JourneyDescription string  `json:"journey_description"`
	JourneyBasePrice   float64 `json:"journey_base_price"`
}

// BookingUpdate holds the fields a modification may change.
type BookingUpdate struct {
	BookingDate time.Time
	ReturnDate  *time.Time
	Passengers  int
	TotalPrice  float64
	TripType    domain.TripType
}

// AccountSummary splits a user's bookings by travel date and totals the simulated savings.
type AccountSummary struct {
	UpcomingBookings []BookingView `json:"upcoming_bookings"`
	PastBookings     []BookingView `json:"past_bookings"`
	TotalCO2Saved    float64       `json:"total_co2_saved"`
	TotalMoneySaved  float64       `json:"total_money_saved"`
}
