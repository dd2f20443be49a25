package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// AnnotationRepository provides persistence operations for annotations.
type AnnotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

// ListActive returns the inspection's annotations excluding soft-deleted
// rows. This is the read-API view.
func (r *AnnotationRepository) ListActive(ctx context.Context, inspectionID uint) ([]domain.Annotation, error) {
	var out []domain.Annotation
	err := r.db.WithContext(ctx).
		Where("inspection_id = ? AND deleted = ?", inspectionID, false).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll returns the inspection's full working set including soft-deleted
// rows, which the reconciler needs to match incoming annotation ids.
func (r *AnnotationRepository) ListAll(ctx context.Context, inspectionID uint) ([]domain.Annotation, error) {
	var out []domain.Annotation
	err := r.db.WithContext(ctx).
		Where("inspection_id = ?", inspectionID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save inserts or updates an annotation row.
func (r *AnnotationRepository) Save(ctx context.Context, a *domain.Annotation) error {
	return r.db.WithContext(ctx).Save(a).Error
}
