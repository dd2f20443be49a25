// Package transformers implements CRUD for transformer records.
package transformers

import (
	"context"
	"log"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
	"github.com/thermowatch/go-thermal-backend/internal/storage"
)

// CreateRequest carries the fields for a new transformer.
type CreateRequest struct {
	Number             string `json:"number" binding:"required"`
	Pole               string `json:"pole"`
	Region             string `json:"region"`
	Type               string `json:"type"`
	BaselineImage      string `json:"baselineImage"`
	BaselineUploadDate string `json:"baselineUploadDate"`
	Weather            string `json:"weather"`
	Location           string `json:"location"`
}

// UpdateRequest carries a partial update; nil fields keep their stored
// value.
type UpdateRequest struct {
	Number             *string `json:"number"`
	Pole               *string `json:"pole"`
	Region             *string `json:"region"`
	Type               *string `json:"type"`
	BaselineImage      *string `json:"baselineImage"`
	BaselineUploadDate *string `json:"baselineUploadDate"`
	Weather            *string `json:"weather"`
	Location           *string `json:"location"`
}

// Response is the transformer view returned by the API.
type Response struct {
	ID                 uint   `json:"id"`
	Number             string `json:"number"`
	Pole               string `json:"pole"`
	Region             string `json:"region"`
	Type               string `json:"type"`
	BaselineImage      string `json:"baselineImage"`
	BaselineUploadDate string `json:"baselineUploadDate"`
	Weather            string `json:"weather"`
	Location           string `json:"location"`
	InspectionCount    int    `json:"inspectionCount"`
}

// Service handles business logic for transformers.
type Service struct {
	repo *storage.TransformerRepository
}

func NewService(repo *storage.TransformerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Response, error) {
	transformers, err := s.repo.ListWithInspections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(transformers))
	for i := range transformers {
		out = append(out, mapToResponse(&transformers[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Response, error) {
	t, err := s.repo.GetWithChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapToResponse(t)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	exists, err := s.repo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflict("Transformer", "number", req.Number)
	}

	t := &domain.Transformer{
		Number:             req.Number,
		Pole:               req.Pole,
		Region:             req.Region,
		Type:               req.Type,
		BaselineImage:      req.BaselineImage,
		BaselineUploadDate: req.BaselineUploadDate,
		Weather:            req.Weather,
		Location:           req.Location,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	log.Printf("[info] operation=create_transformer id=%d number=%s", t.ID, t.Number)
	resp := mapToResponse(t)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest) (*Response, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Re-check uniqueness only when the number actually changes.
	if req.Number != nil && *req.Number != t.Number {
		exists, err := s.repo.ExistsByNumber(ctx, *req.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.NewConflict("Transformer", "number", *req.Number)
		}
		t.Number = *req.Number
	}

	if req.Pole != nil {
		t.Pole = *req.Pole
	}
	if req.Region != nil {
		t.Region = *req.Region
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.BaselineImage != nil {
		t.BaselineImage = *req.BaselineImage
	}
	if req.BaselineUploadDate != nil {
		t.BaselineUploadDate = *req.BaselineUploadDate
	}
	if req.Weather != nil {
		t.Weather = *req.Weather
	}
	if req.Location != nil {
		t.Location = *req.Location
	}

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}

	log.Printf("[info] operation=update_transformer id=%d", id)
	resp := mapToResponse(t)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Printf("[info] operation=delete_transformer id=%d", id)
	return nil
}

func mapToResponse(t *domain.Transformer) Response {
	return Response{
		ID:                 t.ID,
		Number:             t.Number,
		Pole:               t.Pole,
		Region:             t.Region,
		Type:               t.Type,
		BaselineImage:      t.BaselineImage,
		BaselineUploadDate: t.BaselineUploadDate,
		Weather:            t.Weather,
		Location:           t.Location,
		InspectionCount:    len(t.Inspections),
	}
}
