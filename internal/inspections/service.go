// Package inspections implements CRUD for inspection records.
package inspections

import (
	"context"
	"log"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// CreateRequest carries the fields for a new inspection. Anomalies and
// ProgressStatus are frontend-owned JSON blobs passed through verbatim.
type CreateRequest struct {
	TransformerID         uint   `json:"transformerId" binding:"required"`
	Date                  string `json:"date"`
	InspectedDate         string `json:"inspectedDate"`
	Inspector             string `json:"inspector"`
	Notes                 string `json:"notes"`
	Status                string `json:"status"`
	MaintenanceImage      string `json:"maintenanceImage"`
	MaintenanceUploadDate string `json:"maintenanceUploadDate"`
	MaintenanceWeather    string `json:"maintenanceWeather"`
	AnnotatedImage        string `json:"annotatedImage"`
	Anomalies             string `json:"anomalies"`
	ProgressStatus        string `json:"progressStatus"`
}

// UpdateRequest carries a partial update; nil fields keep their stored
// value. A changed TransformerID re-parents the inspection.
type UpdateRequest struct {
	TransformerID         *uint   `json:"transformerId"`
	Date                  *string `json:"date"`
	InspectedDate         *string `json:"inspectedDate"`
	Inspector             *string `json:"inspector"`
	Notes                 *string `json:"notes"`
	Status                *string `json:"status"`
	MaintenanceImage      *string `json:"maintenanceImage"`
	MaintenanceUploadDate *string `json:"maintenanceUploadDate"`
	MaintenanceWeather    *string `json:"maintenanceWeather"`
	AnnotatedImage        *string `json:"annotatedImage"`
	Anomalies             *string `json:"anomalies"`
	ProgressStatus        *string `json:"progressStatus"`
}

// Response is the inspection view returned by the API.
type Response struct {
	ID                    uint   `json:"id"`
	TransformerID         uint   `json:"transformerId"`
	TransformerNumber     string `json:"transformerNumber"`
	Date                  string `json:"date"`
	InspectedDate         string `json:"inspectedDate"`
	Inspector             string `json:"inspector"`
	Notes                 string `json:"notes"`
	Status                string `json:"status"`
	MaintenanceImage      string `json:"maintenanceImage"`
	MaintenanceUploadDate string `json:"maintenanceUploadDate"`
	MaintenanceWeather    string `json:"maintenanceWeather"`
	AnnotatedImage        string `json:"annotatedImage"`
	Anomalies             string `json:"anomalies"`
	ProgressStatus        string `json:"progressStatus"`
}

// Service handles business logic for inspections.
type Service struct {
	repo            *storage.InspectionRepository
	transformerRepo *storage.TransformerRepository
}

func NewService(repo *storage.InspectionRepository, transformerRepo *storage.TransformerRepository) *Service {
	return &Service{repo: repo, transformerRepo: transformerRepo}
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	inspections, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(inspections), nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Response, error) {
	insp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(insp)
	return &resp, nil
}

func (s *Service) ListByTransformer(ctx context.Context, transformerID uint) ([]Response, error) {
	inspections, err := s.repo.ListByTransformer(ctx, transformerID)
	if err != nil {
		return nil, err
	}
	return mapAll(inspections), nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	transformer, err := s.transformerRepo.GetByID(ctx, req.TransformerID)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "Pending"
	}

	insp := &domain.Inspection{
		TransformerID:         transformer.ID,
		Date:                  req.Date,
		InspectedDate:         req.InspectedDate,
		Inspector:             req.Inspector,
		Notes:                 req.Notes,
		Status:                status,
		MaintenanceImage:      req.MaintenanceImage,
		MaintenanceUploadDate: req.MaintenanceUploadDate,
		MaintenanceWeather:    req.MaintenanceWeather,
		AnnotatedImage:        req.AnnotatedImage,
		Anomalies:             req.Anomalies,
		ProgressStatus:        req.ProgressStatus,
	}
	if err := s.repo.Create(ctx, insp); err != nil {
		return nil, err
	}
	insp.Transformer = *transformer

	log.Printf("[info] operation=create_inspection id=%d transformer_id=%d", insp.ID, transformer.ID)
	resp := mapToResponse(insp)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest) (*Response, error) {
	insp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TransformerID != nil && *req.TransformerID != insp.TransformerID {
		transformer, err := s.transformerRepo.GetByID(ctx, *req.TransformerID)
		if err != nil {
			return nil, err
		}
		insp.TransformerID = transformer.ID
		insp.Transformer = *transformer
	}

	if req.Date != nil {
		insp.Date = *req.Date
	}
	if req.InspectedDate != nil {
		insp.InspectedDate = *req.InspectedDate
	}
	if req.Inspector != nil {
		insp.Inspector = *req.Inspector
	}
	if req.Notes != nil {
		insp.Notes = *req.Notes
	}
	if req.Status != nil {
		insp.Status = *req.Status
	}
	if req.MaintenanceImage != nil {
		insp.MaintenanceImage = *req.MaintenanceImage
	}
	if req.MaintenanceUploadDate != nil {
		insp.MaintenanceUploadDate = *req.MaintenanceUploadDate
	}
	if req.MaintenanceWeather != nil {
		insp.MaintenanceWeather = *req.MaintenanceWeather
	}
	if req.AnnotatedImage != nil {
		insp.AnnotatedImage = *req.AnnotatedImage
	}
	if req.Anomalies != nil {
		insp.Anomalies = *req.Anomalies
	}
	if req.ProgressStatus != nil {
		insp.ProgressStatus = *req.ProgressStatus
	}

	if err := s.repo.Save(ctx, insp); err != nil {
		return nil, err
	}

	log.Printf("[info] operation=update_inspection id=%d", id)
	resp := mapToResponse(insp)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Printf("[info] operation=delete_inspection id=%d", id)
	return nil
}

func mapAll(inspections []domain.Inspection) []Response {
	out := make([]Response, 0, len(inspections))
	for i := range inspections {
		out = append(out, mapToResponse(&inspections[i]))
	}
	return out
}

func mapToResponse(insp *domain.Inspection) Response {
	return Response{
		ID:                    insp.ID,
		TransformerID:         insp.TransformerID,
		TransformerNumber:     insp.Transformer.Number,
		Date:                  insp.Date,
		InspectedDate:         insp.InspectedDate,
		Inspector:             insp.Inspector,
		Notes:                 insp.Notes,
		Status:                insp.Status,
		MaintenanceImage:      insp.MaintenanceImage,
		MaintenanceUploadDate: insp.MaintenanceUploadDate,
		MaintenanceWeather:    insp.MaintenanceWeather,
		AnnotatedImage:        insp.AnnotatedImage,
		Anomalies:             insp.Anomalies,
		ProgressStatus:        insp.ProgressStatus,
	}
}
