package db

import (
	"database/sql"
	"fmt"
)

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const journeysDDL = `
CREATE TABLE IF NOT EXISTS journeys (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	origin VARCHAR(100) NOT NULL,
	destination VARCHAR(100) NOT NULL,
	mode VARCHAR(30) NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	duration VARCHAR(30) NOT NULL,
	carbon_footprint VARCHAR(30) NOT NULL,
	description TEXT,
	KEY idx_route (origin, destination)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	journey_id BIGINT NOT NULL,
	passengers INT NOT NULL,
	total_price DECIMAL(10,2) NOT NULL,
	booking_date DATE NULL,
	return_date DATE NULL,
	trip_type VARCHAR(10) NOT NULL DEFAULT 'one_way',
	student_discount TINYINT(1) NOT NULL DEFAULT 0,
	payment_method VARCHAR(50) NOT NULL,
	payment_status VARCHAR(20) NOT NULL,
	transaction_id CHAR(8) NOT NULL,
	booked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_transaction (transaction_id),
	KEY idx_user (user_id),
	CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users(id),
	CONSTRAINT fk_bookings_journey FOREIGN KEY (journey_id) REFERENCES journeys(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// bookingUpgrades are columns added after the first release. Older bookings
// tables get them through ALTER TABLE so stored rows keep working.
var bookingUpgrades = []struct {
	column string
	stmt   string
}{
	{"return_date", `ALTER TABLE bookings ADD COLUMN return_date DATE NULL AFTER booking_date`},
	{"trip_type", `ALTER TABLE bookings ADD COLUMN trip_type VARCHAR(10) NOT NULL DEFAULT 'one_way' AFTER return_date`},
	{"student_discount", `ALTER TABLE bookings ADD COLUMN student_discount TINYINT(1) NOT NULL DEFAULT 0 AFTER trip_type`},
}

// EnsureSchema creates the tables the application needs when they are missing
// and adds any booking columns an older table lacks.
func EnsureSchema(db Schema) error {
	if db == nil {
		return fmt.Errorf("database not available")
	}
	for _, ddl := range []struct {
		table string
		stmt  string
	}{
		{"users", usersDDL},
		{"journeys", journeysDDL},
		{"bookings", bookingsDDL},
	} {
		if _, err := db.Exec(ddl.stmt); err != nil {
			return fmt.Errorf("create %s: %w", ddl.table, err)
		}
	}

	for _, up := range bookingUpgrades {
		if HasColumn(db, "bookings", up.column) {
			continue
		}
		if _, err := db.Exec(up.stmt); err != nil {
			return fmt.Errorf("add bookings.%s: %w", up.column, err)
		}
	}
	return nil
}

// SeedJourney is one row of the built-in journey catalogue.
type SeedJourney struct {
	Origin          string
	Destination     string
	Mode            string
	Price           float64
	Duration        string
	CarbonFootprint string
	Description     string
}

// DefaultJourneys is the catalogue loaded by `greenjourney seed`.
var DefaultJourneys = []SeedJourney{
	{"London", "Manchester", "train", 45.50, "2h 10m", "6.1kg CO2e", "Direct intercity service, quiet coach available."},
	{"London", "Manchester", "coach", 19.99, "4h 35m", "8.4kg CO2e", "Budget coach with free Wi-Fi."},
	{"London", "Manchester", "flight", 89.00, "1h 0m", "62.5kg CO2e", "Short-haul flight, 20kg luggage included."},
	{"London", "Manchester", "car", 55.00, "4h 0m", "41.7kg CO2e", "Shared car, price per seat."},
	{"London", "Edinburgh", "train", 72.00, "4h 20m", "12.3kg CO2e", "East coast main line, scenic route."},
	{"London", "Edinburgh", "flight", 110.00, "1h 25m", "98.2kg CO2e", "Morning departure from Heathrow."},
	{"London", "Edinburgh", "bus", 29.50, "9h 30m", "15.9kg CO2e", "Overnight bus with reclining seats."},
	{"London", "Paris", "train", 99.00, "2h 20m", "2.4kg CO2e", "High-speed rail through the Channel Tunnel."},
	{"London", "Paris", "flight", 120.00, "1h 15m", "54.8kg CO2e", "Direct flight to Charles de Gaulle."},
	{"London", "Paris", "coach", 39.00, "8h 45m", "9.7kg CO2e", "Coach and ferry crossing."},
	{"Manchester", "London", "train", 45.50, "2h 10m", "6.1kg CO2e", "Direct intercity service, quiet coach available."},
	{"Manchester", "Liverpool", "tram", 6.40, "0h 55m", "0.9kg CO2e", "Tram and rail connection."},
	{"Manchester", "Liverpool", "bike", 0.00, "3h 30m", "0kg CO2e", "Self-guided cycle route along the canal."},
	{"Edinburgh", "Glasgow", "train", 14.20, "0h 50m", "1.6kg CO2e", "Frequent shuttle service."},
	{"Edinburgh", "Glasgow", "bus", 8.90, "1h 20m", "2.2kg CO2e", "Express bus between city centres."},
	{"Dover", "Calais", "ferry", 35.00, "1h 30m", "18.4kg CO2e", "Foot passenger ferry crossing."},
}

// SeedJourneys loads DefaultJourneys when the journeys table is empty. It returns the number of rows inserted.
func SeedJourneys(db *sql.DB) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM journeys`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, j := range DefaultJourneys {
		if _, err := db.Exec(`
			INSERT INTO journeys (origin, destination, mode, price, duration, carbon_footprint, description)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, j.Origin, j.Destination, j.Mode, j.Price, j.Duration, j.CarbonFootprint, NullIfEmpty(j.Description)); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
