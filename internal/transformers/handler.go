package transformers

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
	g := r.Group("/transformers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	transformers, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Transformers retrieved successfully", transformers)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := httpapi.UintParam(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Transformer retrieved successfully", t)
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
	httpapi.Created(c, "Transformer created successfully", created)
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
	httpapi.OK(c, "Transformer updated successfully", updated)
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
	httpapi.OK(c, "Transformer deleted successfully", nil)
}
