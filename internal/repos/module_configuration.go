package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type ModuleConfigurationRepo interface {
	// GetByModule returns (nil, nil) when no configuration row is stored for
	// the module; the caller then falls back to its built-in defaults.
	GetByModule(ctx context.Context, tx *gorm.DB, module string) (*types.ModuleConfiguration, error)
	Upsert(ctx context.Context, tx *gorm.DB, cfg *types.ModuleConfiguration) (*types.ModuleConfiguration, error)
}

type moduleConfigurationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) ModuleConfigurationRepo {
	return &moduleConfigurationRepo{db: db, log: baseLog.With("repo", "ModuleConfigurationRepo")}
}

func (mr *moduleConfigurationRepo) GetByModule(ctx context.Context, tx *gorm.DB, module string) (*types.ModuleConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var result types.ModuleConfiguration
	err := transaction.WithContext(ctx).
		Where("module = ?", module).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *moduleConfigurationRepo) Upsert(ctx context.Context, tx *gorm.DB, cfg *types.ModuleConfiguration) (*types.ModuleConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "module"}},
			DoUpdates: clause.AssignmentColumns([]string{"config"}),
		}).
		Create(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}
