package handlers

import (
	"net/http"
	"sync"

	intconfig "flexvry/internal/config"

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
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "flexvry backend berjalan"})
}

// DBCheck pings (reconnecting when needed) and counts reservations.
func DBCheck(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := intconfig.EnsureDB(env); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database tidak merespons: " + err.Error()})
			return
		}
		var count int
		err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM reservations").Scan(&count)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query ke database: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "koneksi database OK", "reservations_in_db": count})
	}
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
