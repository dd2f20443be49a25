package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// InspectionRepository provides persistence operations for inspections.
type InspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// List returns all inspections with their transformer resolved.
func (r *InspectionRepository) List(ctx context.Context) ([]domain.Inspection, error) {
	var out []domain.Inspection
	err := r.db.WithContext(ctx).Preload("Transformer").Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InspectionRepository) GetByID(ctx context.Context, id uint) (*domain.Inspection, error) {
	var insp domain.Inspection
	err := r.db.WithContext(ctx).Preload("Transformer").First(&insp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFound("Inspection", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &insp, nil
}

func (r *InspectionRepository) ListByTransformer(ctx context.Context, transformerID uint) ([]domain.Inspection, error) {
	var out []domain.Inspection
	err := r.db.WithContext(ctx).
		Preload("Transformer").
		Where("transformer_id = ?", transformerID).
		Order("date DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InspectionRepository) Create(ctx context.Context, insp *domain.Inspection) error {
	return r.db.WithContext(ctx).Create(insp).Error
}

func (r *InspectionRepository) Save(ctx context.Context, insp *domain.Inspection) error {
	return r.db.WithContext(ctx).Save(insp).Error
}

// UpdateAnnotatedImage overwrites only the stored annotated-image
// snapshot.
func (r *InspectionRepository) UpdateAnnotatedImage(ctx context.Context, id uint, image string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Inspection{}).
		Where("id = ?", id).
		Update("annotated_image", image).Error
}

// DeleteCascade removes the inspection and, through the FK constraints,
// its annotations and annotation logs.
func (r *InspectionRepository) DeleteCascade(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Inspection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("Inspection", "id", id)
	}
	return nil
}
