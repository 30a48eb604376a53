package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/loader"
	"fleet-dashboard-backend/internal/mw"
)

const idleVisitorTTL = 10 * time.Minute

// Loader is what the router needs from the snapshot loader.
type Loader interface {
	Snapshots
	OnReload(fn func(*loader.Snapshot))
}

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, l Loader, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID(), mw.Logger(log))

	handler := NewHandler(l, cfg.Map, log)

	limiter := mw.NewIPRateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst)
	rateLimiter := mw.RateLimiter(limiter)

	// Cached responses are only valid for the snapshot they were built from.
	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL+time.Minute)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL, snapshotScope)
	l.OnReload(func(*loader.Snapshot) {
		cacheStore.Flush()
		if n := limiter.Prune(idleVisitorTTL); n > 0 {
			log.WithField("removed", n).Debug("Pruned idle rate limiters")
		}
	})

	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter, handler.RequireSnapshot)
	{
		api.GET("/equipment", caching, handler.ListEquipment)
		api.GET("/equipment/:id", caching, handler.GetEquipment)
		api.GET("/equipment/:id/history", caching, handler.GetEquipmentHistory)
		api.GET("/map", caching, handler.GetMap)
		api.GET("/summary", caching, handler.GetSummary)

		api.GET("/states", caching, handler.ListStates)
		api.GET("/states/:id", caching, handler.GetState)
		api.GET("/models", caching, handler.ListModels)
		api.GET("/models/:id", caching, handler.GetModel)
		api.GET("/models/:id/earnings/:state_id", caching, handler.GetModelEarning)

		api.GET("/export/fleet.xlsx", handler.ExportXLSX)
		api.GET("/export/fleet.pdf", handler.ExportPDF)
	}

	return r
}
