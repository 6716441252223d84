package pricing

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/utils"
)

const (
	// DiscountRate is the share taken off the base price by the student discount and promotions.
	DiscountRate = 0.20
	// PromotionProbability is the chance that a journey gets the discount when the student filter is off.
	PromotionProbability = 0.3
	// ReturnMultiplier scales price, emissions and duration of a return trip.
	ReturnMultiplier = 2
)

// RandSource supplies the promotion draw. *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// NewRandSource returns a goroutine-safe source seeded with seed.
func NewRandSource(seed int64) RandSource {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}

// NoPromotions never triggers the random promotion.
type NoPromotions struct{}

func (NoPromotions) Float64() float64 { return 1 }

// FixedSource always returns the same draw.
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) }

// QuoteInput is the base record of a journey plus the traveller's choices.
type QuoteInput struct {
	BasePrice           float64
	BaseEmissions       float64
	BaseDurationMinutes int
	BaseDurationText    string
	TripType            domain.TripType
	StudentDiscount     bool
}

// Quote is the resolved per-person figure set for one journey.
type Quote struct {
	Price           float64 `json:"price"`
	Emissions       float64 `json:"emissions"`
	DurationMinutes int     `json:"duration_minutes"`
	TravelTime      string  `json:"travel_time"`
	DiscountApplied bool    `json:"discount_applied"`
}

// Engine resolves journey prices. The zero value draws promotions from a time-seeded source.
type Engine struct {
	Rand RandSource
}

var (
	defaultSourceOnce sync.Once
	defaultSource     RandSource
)

func NewEngine(src RandSource) Engine {
	return Engine{Rand: src}
}

func (e Engine) source() RandSource {
	if e.Rand != nil {
		return e.Rand
	}
	defaultSourceOnce.Do(func() {
		defaultSource = NewRandSource(time.Now().UnixNano())
	})
	return defaultSource
}

// Price applies the discount to the base price first and doubles for return trips afterwards.
// It never rejects input.
func (e Engine) Price(in QuoteInput) Quote {
	price := in.BasePrice
	discounted := false
	switch {
	case in.StudentDiscount:
		discounted = true
	case e.source().Float64() < PromotionProbability:
		discounted = true
	}
	if discounted {
		price = price * (1 - DiscountRate)
	}

	q := Quote{
		Price:           utils.Round2(price),
		Emissions:       utils.Round2(in.BaseEmissions),
		DurationMinutes: in.BaseDurationMinutes,
		TravelTime:      strings.TrimSpace(in.BaseDurationText),
		DiscountApplied: discounted,
	}
	if q.DurationMinutes < 0 {
		q.DurationMinutes = 0
	}
	if q.TravelTime == "" {
		q.TravelTime = FormatDuration(q.DurationMinutes)
	}

	if in.TripType == domain.TripReturn {
		q.Price = utils.Round2(q.Price * ReturnMultiplier)
		q.Emissions = utils.Round2(q.Emissions * ReturnMultiplier)
		q.DurationMinutes = scaleMinutes(q.DurationMinutes, ReturnMultiplier)
		q.TravelTime = FormatDuration(q.DurationMinutes)
	}
	return q
}

// PriceJourney parses the text columns of a journey row and prices it.
func (e Engine) PriceJourney(j models.Journey, trip domain.TripType, studentDiscount bool) Quote {
	return e.Price(QuoteInput{
		BasePrice:           j.Price,
		BaseEmissions:       ParseFootprint(j.CarbonFootprint),
		BaseDurationMinutes: ParseDurationMinutes(j.Duration),
		BaseDurationText:    j.Duration,
		TripType:            trip,
		StudentDiscount:     studentDiscount,
	})
}

// TripEmissions is the per-person CO2 of a stored booking: the base footprint, doubled for returns.
func TripEmissions(footprint string, trip domain.TripType) float64 {
	e := utils.Round2(ParseFootprint(footprint))
	if trip == domain.TripReturn {
		e = utils.Round2(e * ReturnMultiplier)
	}
	return e
}
