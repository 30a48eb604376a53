package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-dashboard-backend/internal/fleet"
	"fleet-dashboard-backend/internal/view"
)

// ListStates handles GET /api/states.
func (h *Handler) ListStates(c *gin.Context) {
	c.JSON(http.StatusOK, snapshotFrom(c).Catalog.States())
}

// GetState handles GET /api/states/:id. Unknown ids resolve to the placeholder
// name and color instead of 404.
func (h *Handler) GetState(c *gin.Context) {
	catalog := snapshotFrom(c).Catalog
	id := c.Param("id")
	_, err := catalog.State(id)
	c.JSON(http.StatusOK, gin.H{
		"id":    id,
		"name":  catalog.StateName(id),
		"color": catalog.StateColor(id),
		"known": err == nil,
	})
}

// ListModels handles GET /api/models.
func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, snapshotFrom(c).Catalog.Models())
}

// GetModel handles GET /api/models/:id.
func (h *Handler) GetModel(c *gin.Context) {
	m, err := snapshotFrom(c).Catalog.Model(c.Param("id"))
	if err != nil {
		h.abortLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetModelEarning handles GET /api/models/:id/earnings/:state_id.
func (h *Handler) GetModelEarning(c *gin.Context) {
	modelID, stateID := c.Param("id"), c.Param("state_id")
	v, err := snapshotFrom(c).Catalog.HourlyEarning(modelID, stateID)
	if err != nil {
		h.abortLookup(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"equipmentModelId": modelID,
		"equipmentStateId": stateID,
		"value":            v,
		"display":          view.FormatCurrency(v),
	})
}

func (h *Handler) abortLookup(c *gin.Context, err error) {
	if errors.Is(err, fleet.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "catalog lookup failed"})
}
