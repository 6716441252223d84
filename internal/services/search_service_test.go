package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenjourney/internal/domain"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
)

func newSearchService(t *testing.T, draw float64) (SearchService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return SearchService{
		JourneyRepo: repositories.JourneyRepository{DB: db},
		Engine:      pricing.NewEngine(pricing.FixedSource(draw)),
	}, mock
}

func londonParisRows() *sqlmock.Rows {
	return sqlmock.NewRows(journeyCols).
		AddRow(8, "London", "Paris", "train", 99.0, "2h 20m", "2.4kg CO2e", "High-speed rail").
		AddRow(9, "London", "Paris", "flight", 120.0, "1h 15m", "54.8kg CO2e", "Direct flight").
		AddRow(10, "London", "Paris", "coach", 39.0, "8h 45m", "9.7kg CO2e", "Coach and ferry")
}

func TestSearch_CheapestOneWay(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)
	mock.ExpectQuery(`FROM journeys WHERE origin = \? AND destination = \? ORDER BY id`).
		WithArgs("London", "Paris").
		WillReturnRows(londonParisRows())

	res, err := svc.Search(SearchRequest{
		Origin:        " London ",
		Destination:   "Paris",
		DepartureDate: "2026-11-01",
		Passengers:    1,
		Sort:          domain.SortCheapest,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Empty(t, res.Message)

	first := res.Results[0]
	assert.Equal(t, int64(10), first.ID)
	assert.Equal(t, 39.0, first.Cost)
	assert.Equal(t, "London to Paris by coach", first.Route)
	assert.Equal(t, "Departs: 2026-11-01 (Time TBD)", first.Times)
	assert.Equal(t, "Direct", first.Stops)
	assert.Equal(t, "8h 45m", first.TravelTime)
	assert.False(t, first.StudentDiscount)
	assert.Equal(t, int64(9), res.Results[2].ID)
}

func TestSearch_ReturnIsDoubleOneWay(t *testing.T) {
	oneWaySvc, m1 := newSearchService(t, 0.1)
	m1.ExpectQuery("FROM journeys").WillReturnRows(londonParisRows())
	returnSvc, m2 := newSearchService(t, 0.1)
	m2.ExpectQuery("FROM journeys").WillReturnRows(londonParisRows())

	req := SearchRequest{Origin: "London", Destination: "Paris", Passengers: 1}
	oneWay, err := oneWaySvc.Search(req)
	require.NoError(t, err)
	req.TripType = domain.TripReturn
	ret, err := returnSvc.Search(req)
	require.NoError(t, err)

	require.Len(t, ret.Results, len(oneWay.Results))
	for i := range oneWay.Results {
		assert.Equal(t, oneWay.Results[i].ID, ret.Results[i].ID)
		assert.True(t, ret.Results[i].StudentDiscount, "draw below threshold applies the promotion")
		assert.Equal(t, 2*oneWay.Results[i].Cost, ret.Results[i].Cost)
		assert.Equal(t, 2*oneWay.Results[i].CO2Emissions, ret.Results[i].CO2Emissions)
		assert.Equal(t, 2*oneWay.Results[i].DurationMinutes, ret.Results[i].DurationMinutes)
	}
}

func TestSearch_LowestCO2WithModeFilter(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)
	mock.ExpectQuery(`mode IN \(\?,\?\)`).
		WithArgs("London", "Paris", "flight", "train").
		WillReturnRows(sqlmock.NewRows(journeyCols).
			AddRow(9, "London", "Paris", "flight", 120.0, "1h 15m", "54.8kg CO2e", "").
			AddRow(8, "London", "Paris", "train", 99.0, "2h 20m", "2.4kg CO2e", ""))

	res, err := svc.Search(SearchRequest{
		Origin: "London", Destination: "Paris", Passengers: 1,
		Modes: []string{"Flight, train"}, Sort: domain.SortLowestCO2,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "train", res.Results[0].Mode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_EmptyResultMessage(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)
	mock.ExpectQuery("FROM journeys").WillReturnRows(sqlmock.NewRows(journeyCols))

	res, err := svc.Search(SearchRequest{Origin: "Leeds", Destination: "York", Passengers: 1})
	require.NoError(t, err)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
	assert.Equal(t, "No journeys found from Leeds to York. Please try different locations or dates.", res.Message)
}

func TestSearch_Validation(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)

	cases := []SearchRequest{
		{Origin: "London", Destination: "london", Passengers: 1},
		{Origin: "", Destination: "Paris", Passengers: 1},
		{Origin: "London", Destination: "Paris", Passengers: 0},
	}
	for _, req := range cases {
		_, err := svc.Search(req)
		assert.True(t, domain.IsValidation(err), "request %+v", req)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_ModeFilterPassesThroughUnlistedModes(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)
	mock.ExpectQuery(`mode IN \(\?\)`).
		WithArgs("Dover", "Calais", "hovercraft").
		WillReturnRows(sqlmock.NewRows(journeyCols).
			AddRow(21, "Dover", "Calais", "hovercraft", 30.0, "0h 40m", "12kg CO2e", ""))

	res, err := svc.Search(SearchRequest{
		Origin: "Dover", Destination: "Calais", Passengers: 1, Modes: []string{"Hovercraft"},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "hovercraft", res.Results[0].Mode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_UnknownModeFilterFindsNothing(t *testing.T) {
	svc, mock := newSearchService(t, 0.9)
	mock.ExpectQuery(`mode IN \(\?\)`).
		WithArgs("London", "Paris", "rocket").
		WillReturnRows(sqlmock.NewRows(journeyCols))

	res, err := svc.Search(SearchRequest{
		Origin: "London", Destination: "Paris", Passengers: 1, Modes: []string{"rocket"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Contains(t, res.Message, "No journeys found from London to Paris")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// sequenceSource hands out draws in order and counts them.
type sequenceSource struct {
	draws []float64
	calls int
}

func (s *sequenceSource) Float64() float64 {
	d := s.draws[s.calls%len(s.draws)]
	s.calls++
	return d
}

func TestSearch_DrawsPromotionPerJourney(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src := &sequenceSource{draws: []float64{0.1, 0.9, 0.1}}
	svc := SearchService{
		JourneyRepo: repositories.JourneyRepository{DB: db},
		Engine:      pricing.NewEngine(src),
	}
	mock.ExpectQuery("FROM journeys").WillReturnRows(londonParisRows())

	res, err := svc.Search(SearchRequest{Origin: "London", Destination: "Paris", Passengers: 1})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, len(res.Results), src.calls)

	byID := map[int64]bool{}
	for _, r := range res.Results {
		byID[r.ID] = r.StudentDiscount
	}
	assert.True(t, byID[8])
	assert.False(t, byID[9])
	assert.True(t, byID[10])

	for _, r := range res.Results {
		if r.ID == 8 {
			assert.Equal(t, 79.2, r.Cost)
		}
		if r.ID == 9 {
			assert.Equal(t, 120.0, r.Cost)
		}
	}
}

func TestSearch_StudentDiscountSkipsDraws(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src := &sequenceSource{draws: []float64{0.9}}
	svc := SearchService{
		JourneyRepo: repositories.JourneyRepository{DB: db},
		Engine:      pricing.NewEngine(src),
	}
	mock.ExpectQuery("FROM journeys").WillReturnRows(londonParisRows())

	res, err := svc.Search(SearchRequest{Origin: "London", Destination: "Paris", Passengers: 1, StudentDiscount: true})
	require.NoError(t, err)
	for _, r := range res.Results {
		assert.True(t, r.StudentDiscount)
	}
	assert.Zero(t, src.calls)
}

func TestDestinations_EmptyOrigin(t *testing.T) {
	svc, _ := newSearchService(t, 0.9)
	got, err := svc.Destinations("  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}
