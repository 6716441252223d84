package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	cases := map[string]struct {
		limit  int64
		period time.Duration
	}{
		"10-1m": {10, time.Minute},
		"5-30s": {5, 30 * time.Second},
		"20-2h": {20, 2 * time.Hour},
	}
	for in, want := range cases {
		rate, err := ParseCustomRate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want.limit, rate.Limit, in)
		assert.Equal(t, want.period, rate.Period, in)
	}

	for _, bad := range []string{"", "10", "x-1m", "10-m", "10-1d", "0-1m", "10-0s"} {
		_, err := ParseCustomRate(bad)
		assert.Error(t, err, bad)
	}
}
