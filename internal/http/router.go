package api

import (
	"database/sql"
	stdhttp "net/http"
	"time"

	intconfig "greenjourney/internal/config"
	h "greenjourney/internal/http/handlers"
	"greenjourney/internal/http/middleware"
	"greenjourney/internal/pricing"
	"greenjourney/internal/repositories"
	"greenjourney/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the long-lived resources shared by all handlers.
type Deps struct {
	Env          intconfig.Env
	DB           *sql.DB
	Redis        *redis.Client
	PendingStore repositories.PendingStore
	Engine       pricing.Engine
	Now          func() time.Time
}

// pendingStore keeps selections in Redis when it is configured and in memory otherwise.
func (d Deps) pendingStore() repositories.PendingStore {
	if d.PendingStore != nil {
		return d.PendingStore
	}
	if d.Redis != nil {
		return repositories.NewRedisPendingStore(d.Redis)
	}
	utils.WarnLogger.Warn("REDIS_URL not set, pending bookings are kept in process memory")
	return repositories.NewMemoryPendingStore()
}

func NewRouter(deps Deps) *gin.Engine {
	env := deps.Env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.WarnLogger.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	hd := &h.Handler{
		DB:           deps.DB,
		PendingStore: deps.pendingStore(),
		Engine:       deps.Engine,
		JWTSecret:    []byte(env.JWTSecret),
		JWTTTL:       env.JWTTTL,
		PendingTTL:   env.PendingTTL,
		Now:          deps.Now,
	}
	requireAuth := middleware.RequireAuth(hd.ParseToken)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Search
		api.GET("/origins", hd.Origins)
		api.GET("/destinations/:origin", hd.Destinations)
		api.GET("/journeys/search", hd.SearchJourneys)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/register", middleware.RateLimit(env.LoginRate, "register", deps.Redis), hd.Register)
		auth.POST("/login", middleware.RateLimit(env.LoginRate, "login", deps.Redis), hd.Login)

		// Selection and payment
		journeys := api.Group("/journeys", requireAuth)
		journeys.POST("/:id/select", hd.SelectJourney)
		journeys.GET("/:id/rebook", hd.RebookJourney)

		pending := api.Group("/pending", requireAuth)
		pending.GET("/:id", hd.GetPending)
		pending.POST("/:id/pay", hd.PayPending)

		// Account and bookings
		api.GET("/account", requireAuth, hd.Account)

		bookings := api.Group("/bookings", requireAuth)
		bookings.GET("/:ref", hd.GetBooking)
		bookings.GET("/:ref/ticket", hd.GetBookingTicket)
		bookings.GET("/:ref/receipt", hd.GetBookingReceipt)
		bookings.POST("/:ref/cancel", hd.CancelBooking)
		bookings.PUT("/:ref", hd.ModifyBooking)
	}

	h.SetRouter(r)
	return r
}
