package maintenance

import (
	"fmt"
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
	g := r.Group("/records")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/transformer/:id", h.ListByTransformer)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/export/pdf/:id", h.ExportPDF)
}

func (h *Handler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Maintenance records retrieved successfully", records)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Maintenance record retrieved successfully", rec)
}

func (h *Handler) ListByTransformer(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	records, err := h.svc.ListByTransformer(c.Request.Context(), id)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Maintenance records retrieved successfully", records)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !httpapi.BindJSON(c, &req) {
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.Created(c, "Maintenance record created successfully", created)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if !httpapi.BindJSON(c, &req) {
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Maintenance record updated successfully", updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Maintenance record deleted successfully", nil)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	data, err := h.svc.ExportPDF(c.Request.Context(), id)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=maintenance_record_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}
