// Package annotationlogs serves the read side of the annotation audit
// trail and its JSON/CSV exports.
package annotationlogs

import (
	"context"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// Response is the relation-resolved audit row returned by the API and
// the export adapters.
type Response struct {
	ID                uint              `json:"id"`
	InspectionID      uint              `json:"inspectionId"`
	TransformerID     uint              `json:"transformerId"`
	TransformerNumber string            `json:"transformerNumber"`
	ImageID           string            `json:"imageId"`
	ActionType        domain.ActionType `json:"actionType"`
	AnnotationData    string            `json:"annotationData"`
	AIPrediction      *string           `json:"aiPrediction"`
	UserAnnotation    string            `json:"userAnnotation"`
	UserID            string            `json:"userId"`
	Timestamp         string            `json:"timestamp"`
	Notes             string            `json:"notes"`
}

// Service reads annotation audit rows.
type Service struct {
	repo *storage.AnnotationLogRepository
}

func NewService(repo *storage.AnnotationLogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *Service) ListByInspection(ctx context.Context, inspectionID uint) ([]Response, error) {
	rows, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func mapAll(rows []domain.AnnotationLog) []Response {
	out := make([]Response, 0, len(rows))
	for i := range rows {
		out = append(out, mapToResponse(&rows[i]))
	}
	return out
}

func mapToResponse(l *domain.AnnotationLog) Response {
	return Response{
		ID:                l.ID,
		InspectionID:      l.InspectionID,
		TransformerID:     l.TransformerID,
		TransformerNumber: l.Transformer.Number,
		ImageID:           l.ImageID,
		ActionType:        l.ActionType,
		AnnotationData:    l.AnnotationData,
		AIPrediction:      l.AIPrediction,
		UserAnnotation:    l.UserAnnotation,
		UserID:            l.UserID,
		Timestamp:         l.Timestamp,
		Notes:             l.Notes,
	}
}
