package pricing

import (
	"testing"

	"greenjourney/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingTotal(t *testing.T) {
	total, err := BookingTotal(80, 3)
	require.NoError(t, err)
	assert.Equal(t, 240.0, total)

	total, err = BookingTotal(33.33, 3)
	require.NoError(t, err)
	assert.Equal(t, 99.99, total)

	total, err = BookingTotal(19.99, 1)
	require.NoError(t, err)
	assert.Equal(t, 19.99, total)
}

func TestBookingTotal_RejectsNonPositivePassengers(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := BookingTotal(80, n)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}
}
