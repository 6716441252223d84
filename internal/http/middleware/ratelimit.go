package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"greenjourney/internal/utils"
)

// ParseCustomRate accepts "<limit>-<n><unit>" with unit s, m or h, e.g. "10-1m" or "5-30s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(strings.TrimSpace(rateStr), "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if len(durationStr) < 2 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}
	n, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}

	var unit time.Duration
	switch durationStr[len(durationStr)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{Period: time.Duration(n) * unit, Limit: int64(limit)}, nil
}

func newLimiterStore(rdb *redis.Client, routeID string, period time.Duration) (limiter.Store, error) {
	opts := limiter.StoreOptions{
		Prefix:          "rate_limiter:" + routeID,
		MaxRetry:        3,
		CleanUpInterval: period,
	}
	if rdb == nil {
		return memorystore.NewStoreWithOptions(opts), nil
	}
	store, err := redisstore.NewStoreWithOptions(rdb, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
	}
	return store, nil
}

// RateLimit limits requests per client IP. Counters live in Redis when rdb is set and in
// process memory otherwise. A bad rate string disables limiting for the route.
func RateLimit(rateStr, routeID string, rdb *redis.Client) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		utils.WarnLogger.Warnf("rate limit disabled for %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	store, err := newLimiterStore(rdb, routeID, rate.Period)
	if err != nil {
		utils.WarnLogger.Warnf("rate limit disabled for %s: %v", routeID, err)
		return func(c *gin.Context) { c.Next() }
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate),
		ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
			return c.ClientIP()
		}),
		ginmiddleware.WithLimitReachedHandler(func(c *gin.Context) {
			msg := "Too many attempts. Please try again later."
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      msg,
				"code":       "rate_limited",
				"request_id": GetRequestID(c),
				"message":    msg,
			})
		}),
	)
}
