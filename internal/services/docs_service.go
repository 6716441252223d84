package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the e-ticket and receipt of a booking as PDF.
type DocsService struct {
	Now       func() time.Time
	RequestID string
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s DocsService) GenerateETicket(v models.BookingView) ([]byte, string, error) {
	if strings.TrimSpace(v.TransactionID) == "" {
		return nil, "", domain.ValidationError{Field: "transaction_id", Msg: "booking has no reference"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "ref="+v.TransactionID)
	return buildETicketPDF(v)
}

func (s DocsService) GenerateReceipt(v models.BookingView) ([]byte, string, error) {
	if strings.TrimSpace(v.TransactionID) == "" {
		return nil, "", domain.ValidationError{Field: "transaction_id", Msg: "booking has no reference"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_receipt", "ref="+v.TransactionID)
	return buildReceiptPDF(v, s.now())
}

func tripLabel(t domain.TripType) string {
	if t == domain.TripReturn {
		return "Return"
	}
	return "One way"
}

func travelDatesText(v models.BookingView) string {
	out := formatDay(v.BookingDate)
	if v.ReturnDate != nil {
		out += " / back " + formatDay(*v.ReturnDate)
	}
	return out
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return utils.FormatDate(t)
}

func buildETicketPDF(v models.BookingView) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+v.TransactionID, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "GREEN JOURNEY E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ref    : %s", v.TransactionID),
		fmt.Sprintf("Route          : %s -> %s", safe(v.Origin, "-"), safe(v.Destination, "-")),
		fmt.Sprintf("Mode           : %s", safe(v.Mode, "-")),
		fmt.Sprintf("Trip           : %s", tripLabel(v.TripType)),
		fmt.Sprintf("Travel date    : %s", travelDatesText(v)),
		fmt.Sprintf("Duration       : %s", safe(v.Duration, "-")),
		fmt.Sprintf("Passengers     : %d", v.Passengers),
		fmt.Sprintf("Total paid     : GBP %s", utils.FormatAmount(v.TotalPrice)),
		fmt.Sprintf("CO2 per person : %.2f kg", v.CarbonFootprint),
		fmt.Sprintf("Status         : %s", strings.ToUpper(string(v.PaymentStatus))),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if v.PaymentStatus == domain.PaymentCancelled {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, "CANCELLED - NOT VALID FOR TRAVEL")
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this ticket with the booking reference when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(v.TransactionID))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(v models.BookingView, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+v.TransactionID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt no : RCP-"+v.TransactionID)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+utils.FormatIssued(issued))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Method     : "+safe(v.PaymentMethod, "-"))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s ticket %s -> %s by %s (%s)",
		tripLabel(v.TripType), safe(v.Origin, "-"), safe(v.Destination, "-"),
		safe(v.Mode, "-"), travelDatesText(v),
	)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	perPerson := 0.0
	if v.Passengers > 0 {
		perPerson = utils.Round2(v.TotalPrice / float64(v.Passengers))
	}
	pdf.Cell(0, 6, fmt.Sprintf("Price per passenger: GBP %s x %d", utils.FormatAmount(perPerson), v.Passengers))
	pdf.Ln(8)
	if v.StudentDiscount {
		pdf.Cell(0, 6, "Student discount applied")
		pdf.Ln(8)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: GBP "+utils.FormatAmount(v.TotalPrice))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(v.TransactionID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
