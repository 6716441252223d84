package services

import (
	"strconv"
	"strings"
	"time"

	"greenjourney/internal/domain"
)

// PaymentDetails is the simulated card form. Nothing here is ever stored.
type PaymentDetails struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

const (
	msgPaymentIncomplete = "Please fill in all payment details."
	msgCardNumber        = "Invalid card number. Please enter a valid 13-16 digit number."
	msgExpiryFormat      = "Invalid expiry date format. Please use MM/YY."
	msgExpiryPast        = "Invalid expiry date. Date must be in the future."
	msgCVV               = "Invalid CVV. Please enter a 3 or 4 digit number."
)

// ValidatePayment checks the card form the way a checkout page would. Cards expire at the
// end of their month, so the current month is still accepted.
func ValidatePayment(d PaymentDetails, now time.Time) error {
	card := strings.TrimSpace(d.CardNumber)
	expiry := strings.TrimSpace(d.ExpiryDate)
	cvv := strings.TrimSpace(d.CVV)
	name := strings.TrimSpace(d.CardholderName)

	if card == "" || expiry == "" || cvv == "" || name == "" {
		return domain.ValidationError{Field: "payment", Msg: msgPaymentIncomplete}
	}

	if !isDigits(card) || (len(card) != 13 && len(card) != 15 && len(card) != 16) {
		return domain.ValidationError{Field: "card_number", Msg: msgCardNumber}
	}

	if len(expiry) != 5 || !strings.Contains(expiry, "/") {
		return domain.ValidationError{Field: "expiry_date", Msg: msgExpiryFormat}
	}
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return domain.ValidationError{Field: "expiry_date", Msg: msgExpiryFormat}
	}
	month, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[1])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 {
		return domain.ValidationError{Field: "expiry_date", Msg: msgExpiryPast}
	}
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return domain.ValidationError{Field: "expiry_date", Msg: msgExpiryPast}
	}

	if !isDigits(cvv) || (len(cvv) != 3 && len(cvv) != 4) {
		return domain.ValidationError{Field: "cvv", Msg: msgCVV}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
