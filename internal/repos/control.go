package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type ControlRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.Control, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Control, error)
	// Search matches the string against name, adjustability and usage,
	// case-insensitively.
	Search(ctx context.Context, tx *gorm.DB, str string) ([]*types.Control, error)
}

type controlRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewControlRepo(db *gorm.DB, baseLog *logger.Logger) ControlRepo {
	return &controlRepo{db: db, log: baseLog.With("repo", "ControlRepo")}
}

func (cr *controlRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Control, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Control
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *controlRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Control, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.Control
	if err := transaction.WithContext(ctx).
		Where("field_name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *controlRepo) Search(ctx context.Context, tx *gorm.DB, str string) ([]*types.Control, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Control
	pattern := "%" + str + "%"
	if err := transaction.WithContext(ctx).
		Where("field_name LIKE ? OR adjustability LIKE ? OR usage LIKE ?", pattern, pattern, pattern).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
