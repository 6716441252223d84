package pricing

import (
	"time"

	"greenjourney/internal/domain/models"
	"greenjourney/internal/utils"
)

// SavingRate is the flat share of a past booking's price shown as money saved.
const SavingRate = 0.10

// Summarize partitions bookings into upcoming (travel date today or later) and past,
// and totals the simulated savings of the past ones. Payment status plays no part.
func Summarize(bookings []models.BookingView, today time.Time) models.AccountSummary {
	summary := models.AccountSummary{
		UpcomingBookings: make([]models.BookingView, 0, len(bookings)),
		PastBookings:     make([]models.BookingView, 0, len(bookings)),
	}
	day := dateOf(today, today.Location())

	var co2, money float64
	for _, b := range bookings {
		if isUpcoming(b.BookingDate, day) {
			summary.UpcomingBookings = append(summary.UpcomingBookings, b)
			continue
		}
		summary.PastBookings = append(summary.PastBookings, b)
		co2 += b.CarbonFootprint
		money += b.TotalPrice * SavingRate
	}

	summary.TotalCO2Saved = utils.Round2(co2)
	summary.TotalMoneySaved = utils.Round2(money)
	return summary
}

// A missing travel date sorts before every real date, so it counts as past.
func isUpcoming(travel time.Time, today time.Time) bool {
	if travel.IsZero() {
		return false
	}
	return !dateOf(travel, today.Location()).Before(today)
}

// dateOf keeps the calendar date of t as written and places it in loc.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
