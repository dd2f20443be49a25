package annotations

import (
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
	g := r.Group("/annotations")
	g.GET("/:inspectionId", h.List)
	g.POST("/:inspectionId", h.Save)
}

func (h *Handler) List(c *gin.Context) {
	inspectionID, ok := httpapi.UintParam(c, "inspectionId")
	if !ok {
		return
	}
	out, err := h.svc.ListByInspection(c.Request.Context(), inspectionID)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Annotations retrieved successfully", out)
}

func (h *Handler) Save(c *gin.Context) {
	inspectionID, ok := httpapi.UintParam(c, "inspectionId")
	if !ok {
		return
	}
	var req SaveRequest
	if !httpapi.BindJSON(c, &req) {
		return
	}
	saved, err := h.svc.Save(c.Request.Context(), inspectionID, &req)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Annotations saved successfully", saved)
}
