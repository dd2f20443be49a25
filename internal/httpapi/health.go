package httpapi

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "Thermal Inspection Automation System API"

// HealthHandler serves the service banner, liveness and API info routes.
type HealthHandler struct {
	version string
	db      *gorm.DB
}

func NewHealthHandler(version string, db *gorm.DB) *HealthHandler {
	return &HealthHandler{version: version, db: db}
}

func (h *HealthHandler) Root(c *gin.Context) {
	OK(c, "Welcome to the API", gin.H{
		"service":   serviceName,
		"version":   h.version,
		"status":    "running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus := "disconnected"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if sqlDB, err := h.db.DB(); err == nil {
			if err := sqlDB.PingContext(pingCtx); err == nil {
				dbStatus = "connected"
			}
		}
	}

	OK(c, "Service is healthy", gin.H{
		"status":   "UP",
		"database": dbStatus,
	})
}

func (h *HealthHandler) APIInfo(c *gin.Context) {
	OK(c, "API information", gin.H{
		"name":        "Thermal Inspection Automation System",
		"description": "Backend API for managing transformer inspections, anomaly detection, and maintenance records",
		"version":     h.version,
		"endpoints": gin.H{
			"transformers":     "/transformers",
			"inspections":      "/inspections",
			"annotations":      "/annotations",
			"annotationLogs":   "/annotation-logs",
			"records":          "/records",
			"anomalyDetection": "/anomaly-detection",
		},
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/api/info", h.APIInfo)
}
