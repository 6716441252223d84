package domain

import "strings"

// TripType tells the pricing engine whether a journey is travelled once or there and back.
type TripType string

const (
	TripOneWay TripType = "one_way"
	TripReturn TripType = "return"
)

// ParseTripType maps form/query input to a TripType. Empty input means one way.
func ParseTripType(s string) (TripType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "one_way", "oneway", "one-way":
		return TripOneWay, true
	case "return", "round_trip":
		return TripReturn, true
	default:
		return "", false
	}
}

// SortKey selects the ordering applied to search results.
type SortKey string

const (
	SortNone      SortKey = ""
	SortCheapest  SortKey = "cheapest"
	SortFastest   SortKey = "fastest"
	SortLowestCO2 SortKey = "lowest_co2"
)

// ParseSortKey never fails: anything unknown keeps the repository order.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortCheapest:
		return SortCheapest
	case SortFastest:
		return SortFastest
	case SortLowestCO2:
		return SortLowestCO2
	default:
		return SortNone
	}
}

// PaymentStatus is the lifecycle state stored on a booking.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)
