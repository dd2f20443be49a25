package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// MaintenanceRecordRepository provides persistence operations for
// maintenance records.
type MaintenanceRecordRepository struct {
	db *gorm.DB
}

func NewMaintenanceRecordRepository(db *gorm.DB) *MaintenanceRecordRepository {
	return &MaintenanceRecordRepository{db: db}
}

func (r *MaintenanceRecordRepository) List(ctx context.Context) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	err := r.db.WithContext(ctx).Preload("Transformer").Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MaintenanceRecordRepository) GetByID(ctx context.Context, id uint) (*domain.MaintenanceRecord, error) {
	var rec domain.MaintenanceRecord
	err := r.db.WithContext(ctx).Preload("Transformer").First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFound("MaintenanceRecord", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MaintenanceRecordRepository) ListByTransformer(ctx context.Context, transformerID uint) ([]domain.MaintenanceRecord, error) {
	var out []domain.MaintenanceRecord
	err := r.db.WithContext(ctx).
		Preload("Transformer").
		Where("transformer_id = ?", transformerID).
		Order("record_timestamp DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MaintenanceRecordRepository) Create(ctx context.Context, rec *domain.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *MaintenanceRecordRepository) Save(ctx context.Context, rec *domain.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *MaintenanceRecordRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.MaintenanceRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound("MaintenanceRecord", "id", id)
	}
	return nil
}
