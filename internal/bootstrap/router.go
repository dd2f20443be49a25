package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/annotationlogs"
	"github.com/thermowatch/go-thermal-backend/internal/annotations"
	"github.com/thermowatch/go-thermal-backend/internal/detection"
	"github.com/thermowatch/go-thermal-backend/internal/httpapi"
	"github.com/thermowatch/go-thermal-backend/internal/inspections"
	"github.com/thermowatch/go-thermal-backend/internal/maintenance"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
	"github.com/thermowatch/go-thermal-backend/internal/transformers"
)

type RouterDeps struct {
	Version            string
	DB                 *gorm.DB
	DetectionClient    *detection.Client
	CORSAllowedOrigins []string
}

// BuildRouter wires repositories, services and handlers onto a gin
// engine. All configuration arrives explicitly through RouterDeps.
func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpapi.RequestID())
	r.Use(cors.New(corsConfig(dep.CORSAllowedOrigins)))

	transformerRepo := storage.NewTransformerRepository(dep.DB)
	inspectionRepo := storage.NewInspectionRepository(dep.DB)
	logRepo := storage.NewAnnotationLogRepository(dep.DB)
	recordRepo := storage.NewMaintenanceRecordRepository(dep.DB)

	httpapi.NewHealthHandler(dep.Version, dep.DB).RegisterRoutes(r)
	transformers.NewHandler(transformers.NewService(transformerRepo)).RegisterRoutes(r)
	inspections.NewHandler(inspections.NewService(inspectionRepo, transformerRepo)).RegisterRoutes(r)
	annotations.NewHandler(annotations.NewService(dep.DB)).RegisterRoutes(r)
	annotationlogs.NewHandler(annotationlogs.NewService(logRepo)).RegisterRoutes(r)
	maintenance.NewHandler(maintenance.NewService(recordRepo, transformerRepo, inspectionRepo)).RegisterRoutes(r)
	detection.NewHandler(dep.DetectionClient).RegisterRoutes(r)

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"Content-Disposition", "Content-Type", "Content-Length"},
		MaxAge:        time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
