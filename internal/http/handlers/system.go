package handlers

import (
	"net/http"
	"sync"

	"greenjourney/internal/repositories"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "green journey api is running"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	db := h.db()
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database is not connected", nil)
		return
	}
	if err := db.PingContext(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", err)
		return
	}
	count, err := repositories.JourneyRepository{DB: db}.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "db_query_failed", "failed to query journeys", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "journeys_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router is not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method": rt.Method,
			"path":   rt.Path,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
