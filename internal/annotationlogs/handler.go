package annotationlogs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thermowatch/go-thermal-backend/internal/httpapi"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/annotation-logs")
	g.GET("", h.List)
	g.GET("/inspection/:id", h.ListByInspection)
	g.GET("/export/json", h.ExportJSON)
	g.GET("/export/csv", h.ExportCSV)
}

func (h *Handler) List(c *gin.Context) {
	logs, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Annotation logs retrieved successfully", logs)
}

func (h *Handler) ListByInspection(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	logs, err := h.svc.ListByInspection(c.Request.Context(), id)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Annotation logs retrieved successfully", logs)
}

func (h *Handler) ExportJSON(c *gin.Context) {
	data, err := h.svc.ExportJSON(c.Request.Context())
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=annotation_logs.json")
	c.Data(http.StatusOK, "application/json", data)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	data, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=annotation_logs.csv")
	c.Data(http.StatusOK, "text/csv", data)
}
