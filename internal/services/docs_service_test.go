package services

import (
	"bytes"
	"testing"
	"time"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
)

func sampleView() models.BookingView {
	back := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	return models.BookingView{
		Booking: models.Booking{
			ID:              12,
			UserID:          7,
			JourneyID:       3,
			Passengers:      2,
			TotalPrice:      182,
			BookingDate:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			ReturnDate:      &back,
			TripType:        domain.TripReturn,
			PaymentMethod:   PaymentMethodCard,
			PaymentStatus:   domain.PaymentCompleted,
			TransactionID:   "ABCD1234",
			StudentDiscount: true,
		},
		Origin:           "London",
		Destination:      "Manchester",
		Mode:             "train",
		Duration:         "2h 10m",
		CarbonFootprint:  12.2,
		JourneyBasePrice: 45.5,
	}
}

func TestDocsServiceGenerate(t *testing.T) {
	svc := DocsService{Now: func() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC) }}

	pdf, filename, err := svc.GenerateETicket(sampleView())
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("GenerateETicket did not return a PDF")
	}
	if filename != "ETICKET_ABCD1234.pdf" {
		t.Fatalf("unexpected e-ticket filename %q", filename)
	}

	receipt, name, err := svc.GenerateReceipt(sampleView())
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || name != "RECEIPT_ABCD1234.pdf" {
		t.Fatalf("GenerateReceipt returned %d bytes, filename %q", len(receipt), name)
	}
}

func TestDocsServiceCancelledTicket(t *testing.T) {
	v := sampleView()
	v.PaymentStatus = domain.PaymentCancelled
	v.ReturnDate = nil

	pdf, _, err := DocsService{}.GenerateETicket(v)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty pdf")
	}
}

func TestDocsServiceRequiresReference(t *testing.T) {
	v := sampleView()
	v.TransactionID = ""
	if _, _, err := (DocsService{}).GenerateETicket(v); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
