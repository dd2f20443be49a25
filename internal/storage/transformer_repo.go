package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// TransformerRepository provides persistence operations for transformers.
type TransformerRepository struct {
	db *gorm.DB
}

func NewTransformerRepository(db *gorm.DB) *TransformerRepository {
	return &TransformerRepository{db: db}
}

func (r *TransformerRepository) List(ctx context.Context) ([]domain.Transformer, error) {
	var out []domain.Transformer
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListWithInspections resolves each transformer's inspections alongside
// the row, for responses that report per-transformer counts.
func (r *TransformerRepository) ListWithInspections(ctx context.Context) ([]domain.Transformer, error) {
	var out []domain.Transformer
	err := r.db.WithContext(ctx).Preload("Inspections").Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransformerRepository) GetByID(ctx context.Context, id uint) (*domain.Transformer, error) {
	var t domain.Transformer
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFound("Transformer", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetWithChildren resolves the transformer together with its inspections
// and maintenance records in one read.
func (r *TransformerRepository) GetWithChildren(ctx context.Context, id uint) (*domain.Transformer, error) {
	var t domain.Transformer
	err := r.db.WithContext(ctx).
		Preload("Inspections").
		Preload("MaintenanceRecords").
		First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFound("Transformer", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransformerRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Transformer{}).
		Where("number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TransformerRepository) Create(ctx context.Context, t *domain.Transformer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransformerRepository) Save(ctx context.Context, t *domain.Transformer) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteCascade removes the transformer and, through the FK constraints,
// its inspections, their annotations and annotation logs, and its
// maintenance records.
func (r *TransformerRepository) DeleteCascade(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Transformer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("Transformer", "id", id)
	}
	return nil
}
