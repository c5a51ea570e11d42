package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type InsureeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, insuree *types.Insuree) (*types.Insuree, error)
	Update(ctx context.Context, tx *gorm.DB, insuree *types.Insuree) (*types.Insuree, error)
	GetByCHFID(ctx context.Context, tx *gorm.DB, chfID string) (*types.Insuree, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Insuree, error)
	ListLiveByFamily(ctx context.Context, tx *gorm.DB, familyID uint) ([]*types.Insuree, error)
}

type insureeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInsureeRepo(db *gorm.DB, baseLog *logger.Logger) InsureeRepo {
	return &insureeRepo{db: db, log: baseLog.With("repo", "InsureeRepo")}
}

func (ir *insureeRepo) Create(ctx context.Context, tx *gorm.DB, insuree *types.Insuree) (*types.Insuree, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(insuree).Error; err != nil {
		return nil, err
	}
	return insuree, nil
}

func (ir *insureeRepo) Update(ctx context.Context, tx *gorm.DB, insuree *types.Insuree) (*types.Insuree, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Save(insuree).Error; err != nil {
		return nil, err
	}
	return insuree, nil
}

func (ir *insureeRepo) GetByCHFID(ctx context.Context, tx *gorm.DB, chfID string) (*types.Insuree, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Insuree
	if err := transaction.WithContext(ctx).
		Where("chf_id = ? AND validity_to IS NULL", chfID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *insureeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Insuree, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.Insuree
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *insureeRepo) ListLiveByFamily(ctx context.Context, tx *gorm.DB, familyID uint) ([]*types.Insuree, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.Insuree
	if err := transaction.WithContext(ctx).
		Where("family_id = ? AND validity_to IS NULL", familyID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
