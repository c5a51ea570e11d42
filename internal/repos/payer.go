package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type PayerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, payer *types.Payer) (*types.Payer, error)
	// GetByID returns (nil, nil) when the payer does not exist; callers in
	// the renewal flow treat an unresolvable payer as "no payer".
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Payer, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, payerUUID uuid.UUID) (*types.Payer, error)
}

type payerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPayerRepo(db *gorm.DB, baseLog *logger.Logger) PayerRepo {
	return &payerRepo{db: db, log: baseLog.With("repo", "PayerRepo")}
}

func (pr *payerRepo) Create(ctx context.Context, tx *gorm.DB, payer *types.Payer) (*types.Payer, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(payer).Error; err != nil {
		return nil, err
	}
	return payer, nil
}

func (pr *payerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Payer, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Payer
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *payerRepo) GetByUUID(ctx context.Context, tx *gorm.DB, payerUUID uuid.UUID) (*types.Payer, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.Payer
	err := transaction.WithContext(ctx).
		Where("uuid = ?", payerUUID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
