package pricing

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MaxDurationMinutes bounds every parsed duration so a doubled return trip still fits in an int.
const MaxDurationMinutes = math.MaxInt / (2 * ReturnMultiplier)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)h`)
	minutesPattern = regexp.MustCompile(`(\d+)m`)
)

// ParseDurationMinutes reads the first "<n>h" and "<n>m" found anywhere in s.
// Missing parts count as zero and malformed text yields 0, never an error.
func ParseDurationMinutes(s string) int {
	hours := firstNumber(hoursPattern, s)
	minutes := firstNumber(minutesPattern, s)
	if hours > (MaxDurationMinutes-minutes)/60 {
		return MaxDurationMinutes
	}
	return hours*60 + minutes
}

// FormatDuration renders minutes as "<H>h <M>m" without suppressing zeros.
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func firstNumber(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) || n > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	if err != nil {
		return 0
	}
	return n
}

// scaleMinutes multiplies a duration, saturating at MaxInt instead of wrapping.
func scaleMinutes(minutes, factor int) int {
	if minutes <= 0 {
		return 0
	}
	if minutes > math.MaxInt/factor {
		return math.MaxInt
	}
	return minutes * factor
}
