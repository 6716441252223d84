package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	intconfig "greenjourney/internal/config"
	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/pricing"
	"greenjourney/internal/utils"
)

var (
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrDuplicateReference is returned by BookingRepository.Create when the transaction id is taken.
	ErrDuplicateReference = fmt.Errorf("duplicate transaction reference: %w", ErrDuplicateKey)
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create stores a paid booking and returns its id.
func (r BookingRepository) Create(b models.Booking) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}
	if b.UserID <= 0 || b.JourneyID <= 0 {
		return 0, fmt.Errorf("user_id and journey_id are required")
	}

	res, err := db.Exec(`
		INSERT INTO bookings
			(user_id, journey_id, passengers, total_price, booking_date, return_date,
			 trip_type, student_discount, payment_method, payment_status, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.UserID, b.JourneyID, b.Passengers, b.TotalPrice,
		dateArg(b.BookingDate), datePtrArg(b.ReturnDate),
		string(b.TripType), b.StudentDiscount,
		b.PaymentMethod, string(b.PaymentStatus), strings.ToUpper(b.TransactionID),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateReference
		}
		return 0, err
	}
	return res.LastInsertId()
}

const bookingViewSelect = `
	SELECT
		b.id, b.user_id, b.journey_id, b.passengers, b.total_price,
		b.booking_date, b.return_date, b.trip_type, b.student_discount,
		b.payment_method, b.payment_status, b.transaction_id, b.booked_at,
		j.origin, j.destination, j.mode, j.duration, j.carbon_footprint,
		COALESCE(j.description, ''), j.price
	FROM bookings b
	JOIN journeys j ON j.id = b.journey_id
`

func scanBookingView(row interface{ Scan(...any) error }) (models.BookingView, error) {
	var (
		v                         models.BookingView
		bookingDate, returnDate   sql.NullTime
		bookedAt                  sql.NullTime
		tripType, status, footprt string
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.JourneyID, &v.Passengers, &v.TotalPrice,
		&bookingDate, &returnDate, &tripType, &v.StudentDiscount,
		&v.PaymentMethod, &status, &v.TransactionID, &bookedAt,
		&v.Origin, &v.Destination, &v.Mode, &v.Duration, &footprt,
		&v.JourneyDescription, &v.JourneyBasePrice,
	)
	if err != nil {
		return models.BookingView{}, err
	}

	if bookingDate.Valid {
		v.BookingDate = bookingDate.Time
	}
	if returnDate.Valid {
		t := returnDate.Time
		v.ReturnDate = &t
	}
	if bookedAt.Valid {
		v.BookedAt = bookedAt.Time
	}
	v.TripType = domain.TripOneWay
	if tt, ok := domain.ParseTripType(tripType); ok {
		v.TripType = tt
	}
	v.PaymentStatus = domain.PaymentStatus(strings.ToLower(strings.TrimSpace(status)))
	v.CarbonFootprint = pricing.TripEmissions(footprt, v.TripType)
	return v, nil
}

// GetByReference loads the booking owned by userID. Bookings of other users are reported
// as sql.ErrNoRows as well.
func (r BookingRepository) GetByReference(ref string, userID int64) (models.BookingView, error) {
	db := r.db()
	if db == nil {
		return models.BookingView{}, fmt.Errorf("database not available")
	}
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return models.BookingView{}, sql.ErrNoRows
	}
	return scanBookingView(db.QueryRow(bookingViewSelect+`
		WHERE b.transaction_id = ? AND b.user_id = ?
		LIMIT 1
	`, ref, userID))
}

// ListByUser returns every booking of userID, most recent travel date first.
func (r BookingRepository) ListByUser(userID int64) ([]models.BookingView, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not available")
	}
	rows, err := db.Query(bookingViewSelect+`
		WHERE b.user_id = ?
		ORDER BY b.booking_date DESC, b.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingView{}
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cancel marks a completed booking as cancelled and returns the number of rows changed.
// Zero means the booking does not exist, belongs to someone else or is already cancelled.
func (r BookingRepository) Cancel(ref string, userID int64) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}
	res, err := db.Exec(`
		UPDATE bookings
		SET payment_status = ?
		WHERE transaction_id = ? AND user_id = ? AND payment_status = ?
	`, string(domain.PaymentCancelled), strings.ToUpper(strings.TrimSpace(ref)), userID, string(domain.PaymentCompleted))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Update rewrites the travel details of a completed booking.
func (r BookingRepository) Update(ref string, userID int64, u models.BookingUpdate) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}
	_, err := db.Exec(`
		UPDATE bookings
		SET booking_date = ?, return_date = ?, passengers = ?, total_price = ?, trip_type = ?
		WHERE transaction_id = ? AND user_id = ? AND payment_status = ?
	`,
		dateArg(u.BookingDate), datePtrArg(u.ReturnDate), u.Passengers, u.TotalPrice, string(u.TripType),
		strings.ToUpper(strings.TrimSpace(ref)), userID, string(domain.PaymentCompleted),
	)
	return err
}

func dateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return utils.FormatDate(t)
}

func datePtrArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return dateArg(*t)
}
