package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// PolicyService owns update-or-create semantics for policies. A record with a
// uuid updates the existing row; a record without one is a pure creation and
// the caller is expected to have set status and stage beforehand.
type PolicyService interface {
	UpdateOrCreate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Policy, error)
}

type policyService struct {
	db         *gorm.DB
	log        *logger.Logger
	policyRepo repos.PolicyRepo
}

func NewPolicyService(db *gorm.DB, log *logger.Logger, policyRepo repos.PolicyRepo) PolicyService {
	return &policyService{
		db:         db,
		log:        log.With("service", "PolicyService"),
		policyRepo: policyRepo,
	}
}

func (ps *policyService) UpdateOrCreate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Policy, error) {
	var incoming types.Policy
	if err := decodeRecord(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to decode policy record: %w", err)
	}
	if incoming.FamilyID == 0 {
		return nil, fmt.Errorf("policy record has no family_id")
	}

	if raw, ok := data["uuid"]; ok {
		policyUUID, err := parseUUIDValue(raw)
		if err != nil {
			return nil, err
		}
		existing, err := ps.policyRepo.GetByUUID(ctx, tx, policyUUID)
		if err != nil {
			return nil, fmt.Errorf("policy %s not found: %w", policyUUID, err)
		}
		incoming.ID = existing.ID
		incoming.UUID = existing.UUID
		return ps.policyRepo.Update(ctx, tx, &incoming)
	}
	incoming.ID = 0
	return ps.policyRepo.Create(ctx, tx, &incoming)
}
