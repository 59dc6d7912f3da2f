package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "flexvry/internal/config"
	h "flexvry/internal/http/handlers"
	"flexvry/internal/http/middleware"
	"flexvry/internal/mail"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, sender mail.Sender) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	res := h.ReservationHandler{Env: env, Sender: sender}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(env))
		api.GET("/routes", h.Routes)

		reservations := api.Group("/reservations")
		reservations.POST("", res.Create)
		reservations.GET("", res.List)
		reservations.GET("/email/:email", res.GetByEmail)
		reservations.GET("/:id", res.GetOne)
		reservations.PATCH("/:id", res.Update)
		reservations.PATCH("/:id/status", res.UpdateStatus)
		reservations.DELETE("/:id", res.Delete)
		reservations.GET("/:id/slip", res.GetSlipPDF)
	}

	h.SetRouter(r)
	return r
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins = origins[:0]
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
