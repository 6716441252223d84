package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"greenjourney/internal/domain"
	"greenjourney/internal/domain/models"
	"greenjourney/internal/repositories"
	"greenjourney/internal/utils"
)

const (
	DefaultTokenTTL   = 24 * time.Hour
	minPasswordLength = 8

	msgDuplicateUser = "Username or Email already exists. Please choose another."
	msgBadLogin      = "Invalid username or password."
)

// TokenClaims is the JWT payload issued on login.
type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo  repositories.UserRepository
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) Register(username, email, password string) (models.PublicUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "user", Msg: "username, email and password are required"}
	}
	if !strings.Contains(email, "@") {
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "email is not valid"}
	}
	if len(password) < minPasswordLength {
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}

	exists, err := s.UserRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to check user", Err: err}
	}
	if exists {
		return models.PublicUser{}, domain.ConflictError{Msg: msgDuplicateUser}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "failed to hash password", Err: err}
	}

	u := models.User{Username: username, Email: email, PasswordHash: string(hash)}
	id, err := s.UserRepo.Create(u)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return models.PublicUser{}, domain.ConflictError{Msg: msgDuplicateUser, Err: err}
	}
	if err != nil {
		utils.LogEvent(s.RequestID, "auth", "register_error", err.Error())
		return models.PublicUser{}, domain.InternalError{Msg: "failed to create user", Err: err}
	}
	u.ID = id
	utils.LogEvent(s.RequestID, "auth", "register", "username="+username)
	return u.ToPublic(), nil
}

// Login returns a signed token. Unknown users and wrong passwords get the same error.
func (s AuthService) Login(username, password string) (string, models.PublicUser, error) {
	u, err := s.UserRepo.GetByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.PublicUser{}, domain.UnauthorizedError{Msg: msgBadLogin}
	}
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, domain.UnauthorizedError{Msg: msgBadLogin}
	}

	token, err := s.issue(u)
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Msg: "failed to create token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "username="+u.Username)
	return token, u.ToPublic(), nil
}

func (s AuthService) issue(u models.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := s.now()
	claims := TokenClaims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ParseToken verifies an HS256 token and returns its claims.
func (s AuthService) ParseToken(raw string) (TokenClaims, error) {
	var claims TokenClaims
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return TokenClaims{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	if claims.UserID <= 0 {
		return TokenClaims{}, domain.UnauthorizedError{Msg: "invalid token subject"}
	}
	return claims, nil
}
