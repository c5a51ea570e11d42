package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type OfficerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, officer *types.Officer) (*types.Officer, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Officer, error)
}

type officerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOfficerRepo(db *gorm.DB, baseLog *logger.Logger) OfficerRepo {
	return &officerRepo{db: db, log: baseLog.With("repo", "OfficerRepo")}
}

func (or *officerRepo) Create(ctx context.Context, tx *gorm.DB, officer *types.Officer) (*types.Officer, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	if err := transaction.WithContext(ctx).Create(officer).Error; err != nil {
		return nil, err
	}
	return officer, nil
}

func (or *officerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Officer, error) {
	transaction := tx
	if transaction == nil {
		transaction = or.db
	}
	var result types.Officer
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
