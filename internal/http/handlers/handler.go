package handlers

import (
	"database/sql"
	"time"

	intconfig "greenjourney/internal/config"
	"greenjourney/internal/http/middleware"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
	"greenjourney/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the shared dependencies of the HTTP handlers. Services are built per request
// so each one logs with the request id.
type Handler struct {
	DB           *sql.DB
	PendingStore repositories.PendingStore
	Engine       pricing.Engine
	JWTSecret    []byte
	JWTTTL       time.Duration
	PendingTTL   time.Duration
	Now          func() time.Time
}

func (h *Handler) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

func (h *Handler) search(c *gin.Context) services.SearchService {
	return services.SearchService{
		JourneyRepo: repositories.JourneyRepository{DB: h.db()},
		Engine:      h.Engine,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		JourneyRepo:  repositories.JourneyRepository{DB: h.db()},
		BookingRepo:  repositories.BookingRepository{DB: h.db()},
		PendingStore: h.PendingStore,
		PendingTTL:   h.PendingTTL,
		Now:          h.Now,
		RequestID:    middleware.GetRequestID(c),
	}
}

func (h *Handler) account(c *gin.Context) services.AccountService {
	return services.AccountService{
		BookingRepo: repositories.BookingRepository{DB: h.db()},
		Now:         h.Now,
		RequestID:   middleware.GetRequestID(c),
	}
}

func (h *Handler) auth(c *gin.Context) services.AuthService {
	return services.AuthService{
		UserRepo:  repositories.UserRepository{DB: h.db()},
		Secret:    h.JWTSecret,
		TTL:       h.JWTTTL,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Now: h.Now, RequestID: middleware.GetRequestID(c)}
}

// ParseToken adapts AuthService.ParseToken to middleware.RequireAuth.
func (h *Handler) ParseToken(token string) (int64, string, error) {
	claims, err := services.AuthService{Secret: h.JWTSecret, Now: h.Now}.ParseToken(token)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.Username, nil
}
