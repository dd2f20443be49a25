package detection

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thermowatch/go-thermal-backend/internal/httpapi"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/anomaly-detection")
	g.POST("/detect", h.Detect)
	g.GET("/health", h.Health)
}

func (h *Handler) Detect(c *gin.Context) {
	var req DetectRequest
	if !httpapi.BindJSON(c, &req) {
		return
	}

	// Required fields are checked here so that no outbound call is made
	// for an obviously invalid request.
	switch {
	case req.TransformerID == "":
		httpapi.Fail(c, http.StatusBadRequest, "Transformer ID is required", nil)
		return
	case req.BaselineImage == "":
		httpapi.Fail(c, http.StatusBadRequest, "Baseline image is required", nil)
		return
	case req.MaintenanceImage == "":
		httpapi.Fail(c, http.StatusBadRequest, "Maintenance image is required", nil)
		return
	}

	result, err := h.client.Detect(c.Request.Context(), req.TransformerID, req.BaselineImage, req.MaintenanceImage, req.SliderPercent)
	if err != nil {
		httpapi.RenderError(c, err)
		return
	}
	httpapi.OK(c, "Anomaly detection completed", result)
}

func (h *Handler) Health(c *gin.Context) {
	healthy := h.client.Healthy(c.Request.Context())

	status := gin.H{
		"detectionService": "healthy",
		"status":           "All services operational",
	}
	if !healthy {
		status["detectionService"] = "unhealthy"
		status["status"] = "Detection service is down"
		httpapi.Fail(c, http.StatusOK, "Detection service is not available", status)
		return
	}
	httpapi.OK(c, "Service health check passed", status)
}
