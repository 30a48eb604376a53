package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-dashboard-backend/internal/export"
	"fleet-dashboard-backend/internal/view"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ExportXLSX handles GET /api/export/fleet.xlsx.
func (h *Handler) ExportXLSX(c *gin.Context) {
	h.export(c, "fleet.xlsx", xlsxContentType, export.BuildFleetXLSX)
}

// ExportPDF handles GET /api/export/fleet.pdf.
func (h *Handler) ExportPDF(c *gin.Context) {
	h.export(c, "fleet.pdf", pdfContentType, export.BuildFleetPDF)
}

func (h *Handler) export(c *gin.Context, filename, contentType string, build func(view.List, view.Summary) ([]byte, error)) {
	snap := snapshotFrom(c)
	views, failures := filtered(c, snap)
	list := view.NewList(snap.Catalog, views, failures, snap.LoadedAt)

	data, err := build(list, view.NewSummary(snap.Catalog, snap.Results))
	if err != nil {
		h.log.WithError(err).WithField("file", filename).Error("Failed to build export")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
