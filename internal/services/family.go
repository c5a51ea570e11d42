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

// FamilyService owns create-or-update semantics for families. A client never
// supplies a backend id: updates are matched by uuid when present, otherwise
// by the head insuree's CHF number.
type FamilyService interface {
	CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Family, error)
}

type familyService struct {
	db             *gorm.DB
	log            *logger.Logger
	familyRepo     repos.FamilyRepo
	insureeRepo    repos.InsureeRepo
	insureeService InsureeService
}

func NewFamilyService(db *gorm.DB, log *logger.Logger, familyRepo repos.FamilyRepo, insureeRepo repos.InsureeRepo, insureeService InsureeService) FamilyService {
	return &familyService{
		db:             db,
		log:            log.With("service", "FamilyService"),
		familyRepo:     familyRepo,
		insureeRepo:    insureeRepo,
		insureeService: insureeService,
	}
}

func (fs *familyService) CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Family, error) {
	headData, _ := data["head_insuree"].(map[string]any)
	if headData == nil {
		return nil, fmt.Errorf("family payload has no head_insuree")
	}
	headCHFID, _ := headData["chf_id"].(string)
	if headCHFID == "" {
		return nil, fmt.Errorf("head insuree has no chf_id")
	}

	var incoming types.Family
	if err := decodeRecord(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to decode family record: %w", err)
	}

	existing, err := fs.findExisting(ctx, tx, data, headCHFID)
	if err != nil {
		return nil, err
	}

	var family *types.Family
	if existing != nil {
		incoming.ID = existing.ID
		incoming.UUID = existing.UUID
		incoming.HeadInsureeID = existing.HeadInsureeID
		family, err = fs.familyRepo.Update(ctx, tx, &incoming)
	} else {
		incoming.ID = 0
		family, err = fs.familyRepo.Create(ctx, tx, &incoming)
	}
	if err != nil {
		return nil, err
	}

	// The head insuree travels inside the family payload and inherits its
	// audit stamp.
	headData["family_id"] = family.ID
	headData["head"] = true
	headData["validity_from"] = incoming.ValidityFrom
	headData["audit_user_id"] = incoming.AuditUserID
	head, err := fs.insureeService.CreateOrUpdate(ctx, tx, user, headData)
	if err != nil {
		return nil, fmt.Errorf("failed to create or update head insuree: %w", err)
	}
	if family.HeadInsureeID != head.ID {
		family.HeadInsureeID = head.ID
		if family, err = fs.familyRepo.Update(ctx, tx, family); err != nil {
			return nil, err
		}
	}
	return family, nil
}

func (fs *familyService) findExisting(ctx context.Context, tx *gorm.DB, data map[string]any, headCHFID string) (*types.Family, error) {
	if raw, ok := data["uuid"]; ok {
		familyUUID, err := parseUUIDValue(raw)
		if err != nil {
			return nil, err
		}
		return fs.familyRepo.GetByUUID(ctx, tx, familyUUID)
	}
	head, err := fs.insureeRepo.GetByCHFID(ctx, tx, headCHFID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if head.FamilyID == nil {
		return nil, nil
	}
	return fs.familyRepo.GetByID(ctx, tx, *head.FamilyID)
}
