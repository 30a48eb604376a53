package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fleet-dashboard-backend/config"
	"fleet-dashboard-backend/internal/loader"
)

// Snapshots is the read side of the loader.
type Snapshots interface {
	Snapshot() *loader.Snapshot
}

const snapshotKey = "snapshot"

// Handler holds shared dependencies for API handlers.
type Handler struct {
	snapshots Snapshots
	mapCfg    config.MapConfig
	log       logrus.FieldLogger
}

// NewHandler creates a new API handler.
func NewHandler(s Snapshots, mapCfg config.MapConfig, log logrus.FieldLogger) *Handler {
	return &Handler{
		snapshots: s,
		mapCfg:    mapCfg,
		log:       log,
	}
}

// RequireSnapshot pins the current snapshot for the rest of the request, or
// answers 503 while none has been published.
func (h *Handler) RequireSnapshot(c *gin.Context) {
	snap := h.snapshots.Snapshot()
	if snap == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": loader.ErrNotLoaded.Error()})
		return
	}
	c.Set(snapshotKey, snap)
	c.Next()
}

func snapshotFrom(c *gin.Context) *loader.Snapshot {
	return c.MustGet(snapshotKey).(*loader.Snapshot)
}

// snapshotScope keys cached responses by the snapshot they were built from.
func snapshotScope(c *gin.Context) string {
	return strconv.FormatInt(snapshotFrom(c).LoadedAt.UnixNano(), 10)
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	snap := h.snapshots.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"loadedAt":  snap.LoadedAt,
		"equipment": len(snap.Results),
		"failed":    len(snap.Results) - len(snap.Views),
	})
}
