package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type PremiumRepo interface {
	Create(ctx context.Context, tx *gorm.DB, premium *types.Premium) (*types.Premium, error)
	Update(ctx context.Context, tx *gorm.DB, premium *types.Premium) (*types.Premium, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, premiumUUID uuid.UUID) (*types.Premium, error)
	ListByPolicy(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.Premium, error)
}

type premiumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPremiumRepo(db *gorm.DB, baseLog *logger.Logger) PremiumRepo {
	return &premiumRepo{db: db, log: baseLog.With("repo", "PremiumRepo")}
}

func (pr *premiumRepo) Create(ctx context.Context, tx *gorm.DB, premium *types.Premium) (*types.Premium, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(premium).Error; err != nil {
		return nil, err
	}
	return premium, nil
}

func (pr *premiumRepo) Update(ctx context.Context, tx *gorm.DB, premium *types.Premium) (*types.Premium, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(premium).Error; err != nil {
		return nil, err
	}
	return premium, nil
}

func (pr *premiumRepo) GetByUUID(ctx context.Context, tx *gorm.DB, premiumUUID uuid.UUID) (*types.Premium, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Premium
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", premiumUUID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *premiumRepo) ListByPolicy(ctx context.Context, tx *gorm.DB, policyID uint) ([]*types.Premium, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.Premium
	if err := transaction.WithContext(ctx).
		Where("policy_id = ?", policyID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
