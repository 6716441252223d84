package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "greenjourney/internal/config"
	intdb "greenjourney/internal/db"
	"greenjourney/internal/domain/models"
)

type JourneyRepository struct {
	DB *sql.DB
}

func (r JourneyRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const journeyColumns = `id, origin, destination, mode, price, duration, carbon_footprint, COALESCE(description, '')`

func scanJourney(row interface{ Scan(...any) error }) (models.Journey, error) {
	var j models.Journey
	err := row.Scan(&j.ID, &j.Origin, &j.Destination, &j.Mode, &j.Price, &j.Duration, &j.CarbonFootprint, &j.Description)
	return j, err
}

// ListOrigins returns distinct origins in alphabetical order.
func (r JourneyRepository) ListOrigins() ([]string, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not available")
	}
	rows, err := db.Query(`SELECT DISTINCT origin FROM journeys ORDER BY origin`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

// ListDestinations returns distinct destinations reachable from origin in alphabetical order.
func (r JourneyRepository) ListDestinations(origin string) ([]string, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not available")
	}
	rows, err := db.Query(`SELECT DISTINCT destination FROM journeys WHERE origin = ? ORDER BY destination`, origin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Search lists the journeys between origin and destination. An empty modes slice matches every mode.
func (r JourneyRepository) Search(origin, destination string, modes []string) ([]models.Journey, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database not available")
	}

	query := `SELECT ` + journeyColumns + ` FROM journeys WHERE origin = ? AND destination = ?`
	args := []any{origin, destination}
	if len(modes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(modes)), ",")
		query += ` AND mode IN (` + placeholders + `)`
		for _, m := range modes {
			args = append(args, m)
		}
	}
	query += ` ORDER BY id`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Journey{}
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the journey does not exist.
func (r JourneyRepository) GetByID(id int64) (models.Journey, error) {
	db := r.db()
	if db == nil {
		return models.Journey{}, fmt.Errorf("database not available")
	}
	if id <= 0 {
		return models.Journey{}, sql.ErrNoRows
	}
	return scanJourney(db.QueryRow(`SELECT `+journeyColumns+` FROM journeys WHERE id = ? LIMIT 1`, id))
}

// Count returns 0 without error when the journeys table has not been created yet.
func (r JourneyRepository) Count() (int, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}
	if !intdb.HasTable(db, "journeys") {
		return 0, nil
	}
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM journeys`).Scan(&n)
	return n, err
}
