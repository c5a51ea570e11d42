package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type PolicyRenewalRepo interface {
	Create(ctx context.Context, tx *gorm.DB, renewal *types.PolicyRenewal) (*types.PolicyRenewal, error)
	// GetLiveByID returns the not-yet-superseded renewal with the given id,
	// or (nil, nil) when none exists.
	GetLiveByID(ctx context.Context, tx *gorm.DB, id uint) (*types.PolicyRenewal, error)
}

type policyRenewalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPolicyRenewalRepo(db *gorm.DB, baseLog *logger.Logger) PolicyRenewalRepo {
	return &policyRenewalRepo{db: db, log: baseLog.With("repo", "PolicyRenewalRepo")}
}

func (rr *policyRenewalRepo) Create(ctx context.Context, tx *gorm.DB, renewal *types.PolicyRenewal) (*types.PolicyRenewal, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(renewal).Error; err != nil {
		return nil, err
	}
	return renewal, nil
}

func (rr *policyRenewalRepo) GetLiveByID(ctx context.Context, tx *gorm.DB, id uint) (*types.PolicyRenewal, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.PolicyRenewal
	err := transaction.WithContext(ctx).
		Where("id = ? AND validity_to IS NULL", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
