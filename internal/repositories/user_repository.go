package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "greenjourney/internal/config"
	"greenjourney/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts the user and returns the new id. A duplicate username or email
// surfaces as ErrDuplicateKey.
func (r UserRepository) Create(u models.User) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}
	res, err := db.Exec(`
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(u.Username), strings.TrimSpace(u.Email), u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateKey
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	db := r.db()
	if db == nil {
		return false, fmt.Errorf("database not available")
	}
	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM users
		WHERE username = ? OR email = ?
	`, strings.TrimSpace(username), strings.TrimSpace(email)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByUsername returns sql.ErrNoRows when no such user exists.
func (r UserRepository) GetByUsername(username string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, fmt.Errorf("database not available")
	}
	var u models.User
	var created sql.NullTime
	err := db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE username = ?
		LIMIT 1
	`, strings.TrimSpace(username)).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created)
	if err != nil {
		return models.User{}, err
	}
	if created.Valid {
		u.CreatedAt = created.Time
	}
	return u, nil
}
