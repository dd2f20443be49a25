package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// AnnotationLogRepository appends and reads annotation audit rows. The
// log is write-once: no update or delete methods exist.
type AnnotationLogRepository struct {
	db *gorm.DB
}

func NewAnnotationLogRepository(db *gorm.DB) *AnnotationLogRepository {
	return &AnnotationLogRepository{db: db}
}

func (r *AnnotationLogRepository) Append(ctx context.Context, l *domain.AnnotationLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// ListAll returns every log row with inspection and transformer resolved,
// oldest first.
func (r *AnnotationLogRepository) ListAll(ctx context.Context) ([]domain.AnnotationLog, error) {
	var out []domain.AnnotationLog
	err := r.db.WithContext(ctx).
		Preload("Inspection").
		Preload("Transformer").
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnnotationLogRepository) ListByInspection(ctx context.Context, inspectionID uint) ([]domain.AnnotationLog, error) {
	var out []domain.AnnotationLog
	err := r.db.WithContext(ctx).
		Preload("Inspection").
		Preload("Transformer").
		Where("inspection_id = ?", inspectionID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
