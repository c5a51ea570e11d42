package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type FamilyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, family *types.Family) (*types.Family, error)
	Update(ctx context.Context, tx *gorm.DB, family *types.Family) (*types.Family, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Family, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, familyUUID uuid.UUID) (*types.Family, error)
}

type familyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyRepo(db *gorm.DB, baseLog *logger.Logger) FamilyRepo {
	return &familyRepo{db: db, log: baseLog.With("repo", "FamilyRepo")}
}

func (fr *familyRepo) Create(ctx context.Context, tx *gorm.DB, family *types.Family) (*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Create(family).Error; err != nil {
		return nil, err
	}
	return family, nil
}

func (fr *familyRepo) Update(ctx context.Context, tx *gorm.DB, family *types.Family) (*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Save(family).Error; err != nil {
		return nil, err
	}
	return family, nil
}

func (fr *familyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Family
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *familyRepo) GetByUUID(ctx context.Context, tx *gorm.DB, familyUUID uuid.UUID) (*types.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Family
	if err := transaction.WithContext(ctx).
		Where("uuid = ?", familyUUID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
