package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenjourney/internal/domain"
)

func validCard() PaymentDetails {
	return PaymentDetails{CardNumber: "4111111111111111", ExpiryDate: "12/27", CVV: "123", CardholderName: "Ada Lovelace"}
}

func TestValidatePayment(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		mutate func(*PaymentDetails)
		want   string
	}{
		{"valid", func(*PaymentDetails) {}, ""},
		{"amex length", func(d *PaymentDetails) { d.CardNumber = "378282246310005" }, ""},
		{"thirteen digits", func(d *PaymentDetails) { d.CardNumber = "4222222222222" }, ""},
		{"current month still valid", func(d *PaymentDetails) { d.ExpiryDate = "10/26" }, ""},
		{"four digit cvv", func(d *PaymentDetails) { d.CVV = "1234" }, ""},
		{"missing name", func(d *PaymentDetails) { d.CardholderName = "  " }, msgPaymentIncomplete},
		{"missing cvv", func(d *PaymentDetails) { d.CVV = "" }, msgPaymentIncomplete},
		{"short card", func(d *PaymentDetails) { d.CardNumber = "4111" }, msgCardNumber},
		{"fourteen digits", func(d *PaymentDetails) { d.CardNumber = "41111111111111" }, msgCardNumber},
		{"letters in card", func(d *PaymentDetails) { d.CardNumber = "4111-1111-1111-1" }, msgCardNumber},
		{"no slash", func(d *PaymentDetails) { d.ExpiryDate = "12275" }, msgExpiryFormat},
		{"long year", func(d *PaymentDetails) { d.ExpiryDate = "12/2027" }, msgExpiryFormat},
		{"not numeric", func(d *PaymentDetails) { d.ExpiryDate = "ab/cd" }, msgExpiryFormat},
		{"month 13", func(d *PaymentDetails) { d.ExpiryDate = "13/27" }, msgExpiryPast},
		{"last month", func(d *PaymentDetails) { d.ExpiryDate = "09/26" }, msgExpiryPast},
		{"last year", func(d *PaymentDetails) { d.ExpiryDate = "12/25" }, msgExpiryPast},
		{"short cvv", func(d *PaymentDetails) { d.CVV = "12" }, msgCVV},
		{"letters in cvv", func(d *PaymentDetails) { d.CVV = "12a" }, msgCVV},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validCard()
			tc.mutate(&d)
			err := ValidatePayment(d, now)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			var ve domain.ValidationError
			require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
			assert.Equal(t, tc.want, ve.Msg)
		})
	}
}
