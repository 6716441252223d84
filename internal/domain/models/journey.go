package models

// Journey mirrors a row of the journeys reference table.
type Journey struct {
	ID              int64   `json:"id"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Mode            string  `json:"mode"`
	Price           float64 `json:"price"`
	Duration        string  `json:"duration"`
	CarbonFootprint string  `json:"carbon_footprint"`
	Description     string  `json:"description"`
}

// PricedJourney is a search result after discount and trip type have been applied.
// It is rebuilt on every search and never stored.
type PricedJourney struct {
	ID              int64   `json:"id"`
	Mode            string  `json:"mode"`
	Route           string  `json:"route"`
	Times           string  `json:"times"`
	Stops           string  `json:"stops"`
	TravelTime      string  `json:"travel_time"`
	DurationMinutes int     `json:"duration_minutes"`
	Cost            float64 `json:"cost"`
	CO2Emissions    float64 `json:"co2_emissions"`
	StudentDiscount bool    `json:"student_discount"`
	Description     string  `json:"description"`
}
