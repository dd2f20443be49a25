// Package maintenance implements CRUD and PDF export for maintenance
// records.
package maintenance

import (
	"context"
	"log"
	"time"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// CreateRequest carries the fields for a new maintenance record.
// Readings and Anomalies are frontend-owned JSON blobs passed through
// verbatim.
type CreateRequest struct {
	TransformerID     uint   `json:"transformerId" binding:"required"`
	InspectionID      *uint  `json:"inspectionId"`
	EngineerName      string `json:"engineerName"`
	Status            string `json:"status"`
	Readings          string `json:"readings"`
	RecommendedAction string `json:"recommendedAction"`
	Notes             string `json:"notes"`
	AnnotatedImage    string `json:"annotatedImage"`
	Anomalies         string `json:"anomalies"`
	Location          string `json:"location"`
}

// UpdateRequest carries a partial update; nil fields keep their stored
// value.
type UpdateRequest struct {
	EngineerName      *string `json:"engineerName"`
	Status            *string `json:"status"`
	Readings          *string `json:"readings"`
	RecommendedAction *string `json:"recommendedAction"`
	Notes             *string `json:"notes"`
	AnnotatedImage    *string `json:"annotatedImage"`
	Anomalies         *string `json:"anomalies"`
	Location          *string `json:"location"`
}

// Response is the maintenance record view returned by the API.
type Response struct {
	ID                uint   `json:"id"`
	TransformerID     uint   `json:"transformerId"`
	TransformerNumber string `json:"transformerNumber"`
	InspectionID      *uint  `json:"inspectionId"`
	RecordTimestamp   string `json:"recordTimestamp"`
	EngineerName      string `json:"engineerName"`
	Status            string `json:"status"`
	Readings          string `json:"readings"`
	RecommendedAction string `json:"recommendedAction"`
	Notes             string `json:"notes"`
	AnnotatedImage    string `json:"annotatedImage"`
	Anomalies         string `json:"anomalies"`
	Location          string `json:"location"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// Service handles business logic for maintenance records.
type Service struct {
	repo            *storage.MaintenanceRecordRepository
	transformerRepo *storage.TransformerRepository
	inspectionRepo  *storage.InspectionRepository
}

func NewService(
	repo *storage.MaintenanceRecordRepository,
	transformerRepo *storage.TransformerRepository,
	inspectionRepo *storage.InspectionRepository,
) *Service {
	return &Service{repo: repo, transformerRepo: transformerRepo, inspectionRepo: inspectionRepo}
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(records), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Response, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(rec)
	return &resp, nil
}

func (s *Service) ListByTransformer(ctx context.Context, transformerID uint) ([]Response, error) {
	records, err := s.repo.ListByTransformer(ctx, transformerID)
	if err != nil {
		return nil, err
	}
	return mapAll(records), nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	transformer, err := s.transformerRepo.GetByID(ctx, req.TransformerID)
	if err != nil {
		return nil, err
	}

	// Optional inspection reference; a dangling id is dropped silently.
	inspectionID := req.InspectionID
	if inspectionID != nil {
		if _, err := s.inspectionRepo.GetByID(ctx, *inspectionID); err != nil {
			inspectionID = nil
		}
	}

	// Location is a snapshot of the transformer's location at creation
	// time; it does not track later transformer updates.
	location := req.Location
	if location == "" {
		location = transformer.Location
	}

	now := time.Now().Format(domain.TimestampLayout)
	rec := &domain.MaintenanceRecord{
		TransformerID:     transformer.ID,
		InspectionID:      inspectionID,
		RecordTimestamp:   now,
		EngineerName:      req.EngineerName,
		Status:            req.Status,
		Readings:          req.Readings,
		RecommendedAction: req.RecommendedAction,
		Notes:             req.Notes,
		AnnotatedImage:    req.AnnotatedImage,
		Anomalies:         req.Anomalies,
		Location:          location,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	rec.Transformer = *transformer

	log.Printf("[info] operation=create_maintenance_record id=%d transformer_id=%d", rec.ID, transformer.ID)
	resp := mapToResponse(rec)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest) (*Response, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EngineerName != nil {
		rec.EngineerName = *req.EngineerName
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.Readings != nil {
		rec.Readings = *req.Readings
	}
	if req.RecommendedAction != nil {
		rec.RecommendedAction = *req.RecommendedAction
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.AnnotatedImage != nil {
		rec.AnnotatedImage = *req.AnnotatedImage
	}
	if req.Anomalies != nil {
		rec.Anomalies = *req.Anomalies
	}
	if req.Location != nil {
		rec.Location = *req.Location
	}
	rec.UpdatedAt = time.Now().Format(domain.TimestampLayout)

	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	log.Printf("[info] operation=update_maintenance_record id=%d", id)
	resp := mapToResponse(rec)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[info] operation=delete_maintenance_record id=%d", id)
	return nil
}

func mapAll(records []domain.MaintenanceRecord) []Response {
	out := make([]Response, 0, len(records))
	for i := range records {
		out = append(out, mapToResponse(&records[i]))
	}
	return out
}

func mapToResponse(rec *domain.MaintenanceRecord) Response {
	return Response{
		ID:                rec.ID,
		TransformerID:     rec.TransformerID,
		TransformerNumber: rec.Transformer.Number,
		InspectionID:      rec.InspectionID,
		RecordTimestamp:   rec.RecordTimestamp,
		EngineerName:      rec.EngineerName,
		Status:            rec.Status,
		Readings:          rec.Readings,
		RecommendedAction: rec.RecommendedAction,
		Notes:             rec.Notes,
		AnnotatedImage:    rec.AnnotatedImage,
		Anomalies:         rec.Anomalies,
		Location:          rec.Location,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}
