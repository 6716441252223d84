package pricing

import (
	"greenjourney/internal/domain"
	"greenjourney/internal/utils"
)

// BookingTotal is the amount persisted for a booking.
func BookingTotal(pricePerPerson float64, passengers int) (float64, error) {
	if passengers < 1 {
		return 0, domain.ValidationError{Field: "passengers", Msg: "passengers must be at least 1"}
	}
	return utils.Round2(pricePerPerson * float64(passengers)), nil
}
