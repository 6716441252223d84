package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenjourney/internal/domain"
	"greenjourney/internal/repositories"
)

func TestAccountSummary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE b.user_id = \?`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingViewCols).
			AddRow(2, 7, 3, 1, 100.00, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), nil, "one_way", false,
				PaymentMethodCard, "completed", "BBBB2222", testNow, "London", "Manchester", "train", "2h 10m", "6.1kg CO2e", "", 45.50).
			AddRow(3, 7, 3, 1, 45.50, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), nil, "one_way", false,
				PaymentMethodCard, "completed", "CCCC3333", testNow, "London", "Manchester", "train", "2h 10m", "6.1kg CO2e", "", 45.50).
			AddRow(1, 7, 4, 1, 50.00, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), nil, "return", false,
				PaymentMethodCard, "cancelled", "AAAA1111", testNow, "London", "Manchester", "coach", "4h 35m", "8.4kg CO2e", "", 19.99))

	svc := AccountService{
		BookingRepo: repositories.BookingRepository{DB: db},
		Now:         func() time.Time { return testNow },
	}
	sum, err := svc.Summary(7)
	require.NoError(t, err)

	require.Len(t, sum.UpcomingBookings, 2)
	require.Len(t, sum.PastBookings, 1)
	assert.Equal(t, "AAAA1111", sum.PastBookings[0].TransactionID)
	assert.Equal(t, 16.8, sum.TotalCO2Saved)
	assert.Equal(t, 5.0, sum.TotalMoneySaved)
}

func TestAccountSummary_StorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM bookings").WillReturnError(errors.New("connection reset"))

	_, err = AccountService{BookingRepo: repositories.BookingRepository{DB: db}}.Summary(7)
	assert.True(t, domain.IsInternal(err))
}
