package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-dashboard-backend/internal/fleet"
	"fleet-dashboard-backend/internal/loader"
	"fleet-dashboard-backend/internal/view"
)

// filtered applies the q and id query parameters to the snapshot.
func filtered(c *gin.Context, snap *loader.Snapshot) ([]fleet.EquipmentWithDetails, []fleet.Result) {
	q, id := c.Query("q"), c.Query("id")
	views := fleet.FilterByText(fleet.FilterByID(snap.Views, id), q)

	blank := strings.TrimSpace(q) == ""
	needle := strings.ToLower(q)
	var failures []fleet.Result
	for _, r := range snap.Failures() {
		if id != "" && r.Equipment.ID != id {
			continue
		}
		if !blank && !strings.Contains(strings.ToLower(r.Equipment.Name), needle) {
			continue
		}
		failures = append(failures, r)
	}
	return views, failures
}

// ListEquipment handles GET /api/equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	snap := snapshotFrom(c)
	views, failures := filtered(c, snap)
	c.JSON(http.StatusOK, view.NewList(snap.Catalog, views, failures, snap.LoadedAt))
}

// lookup resolves :id to an enriched equipment, writing 404 or 422 otherwise.
func lookup(c *gin.Context, snap *loader.Snapshot) (fleet.EquipmentWithDetails, bool) {
	id := c.Param("id")
	r, ok := snap.Find(id)
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "equipment not found"})
		return fleet.EquipmentWithDetails{}, false
	}
	if r.Err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "equipment enrichment failed",
			"failure": view.Failure(r),
		})
		return fleet.EquipmentWithDetails{}, false
	}
	return *r.Details, true
}

// GetEquipment handles GET /api/equipment/:id.
func (h *Handler) GetEquipment(c *gin.Context) {
	snap := snapshotFrom(c)
	d, ok := lookup(c, snap)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view.Item(snap.Catalog, d))
}

// GetEquipmentHistory handles GET /api/equipment/:id/history.
func (h *Handler) GetEquipmentHistory(c *gin.Context) {
	snap := snapshotFrom(c)
	d, ok := lookup(c, snap)
	if !ok {
		return
	}
	rows := view.History(snap.Catalog, d)
	resp := gin.H{"equipmentId": d.ID, "history": rows}
	if len(rows) == 0 {
		resp["note"] = view.NoHistory
	}
	c.JSON(http.StatusOK, resp)
}

// GetMap handles GET /api/map.
func (h *Handler) GetMap(c *gin.Context) {
	snap := snapshotFrom(c)
	views, _ := filtered(c, snap)
	c.JSON(http.StatusOK, view.NewMapView(h.mapCfg, snap.Catalog, views))
}

// GetSummary handles GET /api/summary.
func (h *Handler) GetSummary(c *gin.Context) {
	snap := snapshotFrom(c)
	c.JSON(http.StatusOK, view.NewSummary(snap.Catalog, snap.Results))
}
