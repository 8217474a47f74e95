package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akmmubashir/quran-backend/internal/shared/middleware"
	"github.com/akmmubashir/quran-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.QuranHandler.RegisterRoutes(v1)
		c.AyahContentHandler.RegisterRoutes(v1)
	}

	return router
}

// healthCheckHandler reports process liveness plus the state of the database
// and cache connections.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":      "ok",
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"timestamp":   time.Now().UTC(),
		}

		status := http.StatusOK
		if err := c.DB.Ping(ctx.Request.Context()); err != nil {
			health["status"] = "degraded"
			health["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			health["database"] = "ok"
		}

		if c.Cache == nil {
			health["cache"] = "disabled"
		} else if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			health["cache"] = "unreachable"
		} else {
			health["cache"] = "ok"
		}

		ctx.JSON(status, health)
	}
}
