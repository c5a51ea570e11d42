package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// InsureeService upserts insurees by CHF number.
type InsureeService interface {
	CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Insuree, error)
}

type insureeService struct {
	db          *gorm.DB
	log         *logger.Logger
	insureeRepo repos.InsureeRepo
}

func NewInsureeService(db *gorm.DB, log *logger.Logger, insureeRepo repos.InsureeRepo) InsureeService {
	return &insureeService{
		db:          db,
		log:         log.With("service", "InsureeService"),
		insureeRepo: insureeRepo,
	}
}

func (is *insureeService) CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Insuree, error) {
	var incoming types.Insuree
	if err := decodeRecord(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to decode insuree record: %w", err)
	}
	if incoming.CHFID == "" {
		return nil, fmt.Errorf("insuree record has no chf_id")
	}

	existing, err := is.insureeRepo.GetByCHFID(ctx, tx, incoming.CHFID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		incoming.ID = existing.ID
		incoming.UUID = existing.UUID
		if incoming.FamilyID == nil {
			incoming.FamilyID = existing.FamilyID
		}
		return is.insureeRepo.Update(ctx, tx, &incoming)
	}
	incoming.ID = 0
	return is.insureeRepo.Create(ctx, tx, &incoming)
}
