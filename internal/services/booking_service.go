package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/metrics"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
	"greenjourney/internal/utils"
)

const (
	DefaultPendingTTL    = 30 * time.Minute
	PaymentMethodCard    = "simulated-card"
	maxReferenceAttempts = 5
)

type SelectRequest struct {
	Passengers      int    `json:"passengers"`
	TripType        string `json:"journey_type"`
	DepartureDate   string `json:"departure_date"`
	ReturnDate      string `json:"return_date"`
	StudentDiscount bool   `json:"student_discount"`
}

type ModifyRequest struct {
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    int    `json:"passengers"`
	TripType      string `json:"journey_type"`
}

// RebookPrefill carries the search form values for booking a journey again.
type RebookPrefill struct {
	JourneyID   int64  `json:"journey_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
}

type BookingService struct {
	JourneyRepo  repositories.JourneyRepository
	BookingRepo  repositories.BookingRepository
	PendingStore repositories.PendingStore
	PendingTTL   time.Duration
	// Now and NewReference are replaced in tests.
	Now          func() time.Time
	NewReference func() string
	RequestID    string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) ttl() time.Duration {
	if s.PendingTTL > 0 {
		return s.PendingTTL
	}
	return DefaultPendingTTL
}

func (s BookingService) reference() string {
	if s.NewReference != nil {
		return strings.ToUpper(s.NewReference())
	}
	return NewTransactionReference()
}

// NewTransactionReference returns the first eight characters of a random uuid, uppercased.
func NewTransactionReference() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Priced selections are never discounted at random; only the traveller's student flag applies.
var selectionEngine = pricing.NewEngine(pricing.NoPromotions{})

type travelDates struct {
	trip      domain.TripType
	departure time.Time
	ret       *time.Time
}

func parseTravelDates(tripRaw, departureRaw, returnRaw string) (travelDates, error) {
	var out travelDates
	trip, ok := domain.ParseTripType(tripRaw)
	if !ok {
		return out, domain.ValidationError{Field: "journey_type", Msg: "journey_type must be one_way or return"}
	}
	out.trip = trip

	if strings.TrimSpace(departureRaw) == "" {
		return out, domain.ValidationError{Field: "departure_date", Msg: "departure_date is required"}
	}
	dep, err := utils.ParseDate(departureRaw)
	if err != nil {
		return out, domain.ValidationError{Field: "departure_date", Msg: "departure_date must be YYYY-MM-DD", Err: err}
	}
	out.departure = dep

	if trip == domain.TripReturn && strings.TrimSpace(returnRaw) != "" {
		ret, err := utils.ParseDate(returnRaw)
		if err != nil {
			return out, domain.ValidationError{Field: "return_date", Msg: "return_date must be YYYY-MM-DD", Err: err}
		}
		if ret.Before(dep) {
			return out, domain.ValidationError{Field: "return_date", Msg: "return_date cannot be before departure_date"}
		}
		out.ret = &ret
	}
	return out, nil
}

func (s BookingService) loadJourney(journeyID int64) (models.Journey, error) {
	j, err := s.JourneyRepo.GetByID(journeyID)
	if errors.Is(err, sql.ErrNoRows) {
		return j, domain.NotFoundError{Resource: "journey", Err: err}
	}
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "load_journey_error", err.Error())
		return j, domain.InternalError{Msg: "failed to load journey", Err: err}
	}
	return j, nil
}

// Select prices a journey for the traveller and keeps the result as a pending booking.
func (s BookingService) Select(ctx context.Context, userID, journeyID int64, req SelectRequest) (models.PendingBooking, error) {
	if req.Passengers < 1 {
		return models.PendingBooking{}, domain.ValidationError{Field: "passengers", Msg: "passengers must be at least 1"}
	}
	dates, err := parseTravelDates(req.TripType, req.DepartureDate, req.ReturnDate)
	if err != nil {
		return models.PendingBooking{}, err
	}
	j, err := s.loadJourney(journeyID)
	if err != nil {
		return models.PendingBooking{}, err
	}

	q := selectionEngine.PriceJourney(j, dates.trip, req.StudentDiscount)
	total, err := pricing.BookingTotal(q.Price, req.Passengers)
	if err != nil {
		return models.PendingBooking{}, err
	}

	now := s.now()
	p := models.PendingBooking{
		ID:              shortuuid.New(),
		UserID:          userID,
		JourneyID:       j.ID,
		Origin:          j.Origin,
		Destination:     j.Destination,
		Mode:            j.Mode,
		Description:     j.Description,
		PricePerPerson:  q.Price,
		CO2Emissions:    q.Emissions,
		TravelTime:      q.TravelTime,
		StudentDiscount: req.StudentDiscount,
		Passengers:      req.Passengers,
		TripType:        dates.trip,
		DepartureDate:   dates.departure,
		ReturnDate:      dates.ret,
		TotalPrice:      total,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl()),
	}
	if err := s.PendingStore.Save(ctx, p, s.ttl()); err != nil {
		utils.LogEvent(s.RequestID, "booking", "pending_save_error", err.Error())
		return models.PendingBooking{}, domain.InternalError{Msg: "failed to keep selection", Err: err}
	}
	metrics.PendingCreated.Inc()
	utils.LogEvent(s.RequestID, "booking", "select", fmt.Sprintf("pending=%s journey=%d total=%s", p.ID, j.ID, utils.FormatMoney(total)))
	return p, nil
}

var errNoSelection = domain.NotFoundError{Resource: "pending booking", Msg: "No journey selected for payment. Please select a journey first."}

// Pending returns the pending booking only to the user who created it.
func (s BookingService) Pending(ctx context.Context, userID int64, id string) (models.PendingBooking, error) {
	id = strings.TrimSpace(id)
	notFound := errNoSelection
	if id == "" {
		return models.PendingBooking{}, notFound
	}
	p, err := s.PendingStore.Get(ctx, id)
	if errors.Is(err, repositories.ErrPendingNotFound) {
		return models.PendingBooking{}, notFound
	}
	if err != nil {
		return models.PendingBooking{}, domain.InternalError{Msg: "failed to load selection", Err: err}
	}
	if p.UserID != userID || p.Expired(s.now()) {
		return models.PendingBooking{}, notFound
	}
	return p, nil
}

// Pay validates the card form and turns the pending booking into a completed booking.
func (s BookingService) Pay(ctx context.Context, userID int64, pendingID string, details PaymentDetails) (models.Booking, error) {
	p, err := s.Pending(ctx, userID, pendingID)
	if err != nil {
		return models.Booking{}, err
	}
	if err := ValidatePayment(details, s.now()); err != nil {
		metrics.PaymentsRejected.Inc()
		return models.Booking{}, err
	}

	// Claim the selection before writing so a repeated pay cannot book twice.
	p, err = s.PendingStore.Take(ctx, p.ID)
	if errors.Is(err, repositories.ErrPendingNotFound) {
		return models.Booking{}, errNoSelection
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to load selection", Err: err}
	}

	b, err := s.persist(userID, p)
	if err != nil {
		s.restorePending(ctx, p)
		return models.Booking{}, err
	}

	metrics.BookingsCreated.Inc()
	utils.LogEvent(s.RequestID, "booking", "paid", fmt.Sprintf("ref=%s total=%s", b.TransactionID, utils.FormatMoney(b.TotalPrice)))
	return b, nil
}

// persist writes the booking, drawing a new reference on each unique-key collision.
func (s BookingService) persist(userID int64, p models.PendingBooking) (models.Booking, error) {
	b := models.Booking{
		UserID:          userID,
		JourneyID:       p.JourneyID,
		Passengers:      p.Passengers,
		TotalPrice:      p.TotalPrice,
		BookingDate:     p.DepartureDate,
		ReturnDate:      p.ReturnDate,
		TripType:        p.TripType,
		StudentDiscount: p.StudentDiscount,
		PaymentMethod:   PaymentMethodCard,
		PaymentStatus:   domain.PaymentCompleted,
	}

	var created bool
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		b.TransactionID = s.reference()
		id, err := s.BookingRepo.Create(b)
		if errors.Is(err, repositories.ErrDuplicateReference) {
			utils.LogEvent(s.RequestID, "booking", "reference_collision", b.TransactionID)
			continue
		}
		if err != nil {
			utils.LogEvent(s.RequestID, "booking", "create_error", err.Error())
			return models.Booking{}, domain.InternalError{Msg: "failed to save booking", Err: err}
		}
		b.ID = id
		created = true
		break
	}
	if !created {
		return models.Booking{}, domain.InternalError{Msg: "could not allocate a booking reference"}
	}
	b.BookedAt = s.now()
	return b, nil
}

// restorePending puts a claimed selection back for its remaining lifetime after a failed write.
func (s BookingService) restorePending(ctx context.Context, p models.PendingBooking) {
	ttl := p.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.PendingStore.Save(ctx, p, ttl); err != nil {
		utils.WarnLogger.WithField("request_id", s.RequestID).Warnf("pending %s not restored: %v", p.ID, err)
	}
}

// View returns the booking joined with its journey. It doubles as the confirmation page.
func (s BookingService) View(userID int64, ref string) (models.BookingView, error) {
	v, err := s.BookingRepo.GetByReference(ref, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "booking", Msg: "Booking not found or you do not have permission to view it.", Err: err}
	}
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "view_error", err.Error())
		return v, domain.InternalError{Msg: "failed to load booking", Err: err}
	}
	return v, nil
}

func (s BookingService) Cancel(userID int64, ref string) error {
	n, err := s.BookingRepo.Cancel(ref, userID)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "cancel_error", err.Error())
		return domain.InternalError{Msg: "failed to cancel booking", Err: err}
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "booking", Msg: "Booking not found or already cancelled."}
	}
	metrics.BookingsCancelled.Inc()
	utils.LogEvent(s.RequestID, "booking", "cancel", "ref="+strings.ToUpper(strings.TrimSpace(ref)))
	return nil
}

// Modify changes dates, passengers or trip type and recomputes the total from the journey's base price.
func (s BookingService) Modify(userID int64, ref string, req ModifyRequest) (models.BookingView, error) {
	if strings.TrimSpace(req.DepartureDate) == "" || req.Passengers < 1 {
		return models.BookingView{}, domain.ValidationError{Field: "booking", Msg: "Invalid input for date or passengers."}
	}
	dates, err := parseTravelDates(req.TripType, req.DepartureDate, req.ReturnDate)
	if err != nil {
		return models.BookingView{}, err
	}

	current, err := s.View(userID, ref)
	if err != nil {
		return models.BookingView{}, err
	}
	if current.PaymentStatus == domain.PaymentCancelled {
		return models.BookingView{}, domain.ValidationError{Field: "booking", Msg: "Cancelled bookings cannot be modified."}
	}

	q := selectionEngine.Price(pricing.QuoteInput{
		BasePrice:        current.JourneyBasePrice,
		BaseDurationText: current.Duration,
		TripType:         dates.trip,
		StudentDiscount:  current.StudentDiscount,
	})
	total, err := pricing.BookingTotal(q.Price, req.Passengers)
	if err != nil {
		return models.BookingView{}, err
	}

	update := models.BookingUpdate{
		BookingDate: dates.departure,
		ReturnDate:  dates.ret,
		Passengers:  req.Passengers,
		TotalPrice:  total,
		TripType:    dates.trip,
	}
	if err := s.BookingRepo.Update(current.TransactionID, userID, update); err != nil {
		utils.LogEvent(s.RequestID, "booking", "modify_error", err.Error())
		return models.BookingView{}, domain.InternalError{Msg: "failed to update booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "modify", fmt.Sprintf("ref=%s total=%s", current.TransactionID, utils.FormatMoney(total)))
	return s.View(userID, current.TransactionID)
}

// Rebook returns the search values of a journey so the client can search it again.
func (s BookingService) Rebook(userID, journeyID int64) (RebookPrefill, error) {
	j, err := s.loadJourney(journeyID)
	if err != nil {
		return RebookPrefill{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "rebook", fmt.Sprintf("user=%d journey=%d", userID, journeyID))
	return RebookPrefill{
		JourneyID:   j.ID,
		Origin:      j.Origin,
		Destination: j.Destination,
		Mode:        j.Mode,
	}, nil
}
