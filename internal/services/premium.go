package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// PremiumService records payments against policies. The payload references
// its policy (and optional payer) by uuid.
type PremiumService interface {
	CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Premium, error)
}

type premiumService struct {
	db          *gorm.DB
	log         *logger.Logger
	premiumRepo repos.PremiumRepo
	policyRepo  repos.PolicyRepo
	payerRepo   repos.PayerRepo
}

func NewPremiumService(db *gorm.DB, log *logger.Logger, premiumRepo repos.PremiumRepo, policyRepo repos.PolicyRepo, payerRepo repos.PayerRepo) PremiumService {
	return &premiumService{
		db:          db,
		log:         log.With("service", "PremiumService"),
		premiumRepo: premiumRepo,
		policyRepo:  policyRepo,
		payerRepo:   payerRepo,
	}
}

func (ps *premiumService) CreateOrUpdate(ctx context.Context, tx *gorm.DB, user *types.User, data map[string]any) (*types.Premium, error) {
	rawPolicyUUID, ok := data["policy_uuid"]
	if !ok {
		return nil, fmt.Errorf("premium record has no policy_uuid")
	}
	policyUUID, err := parseUUIDValue(rawPolicyUUID)
	if err != nil {
		return nil, err
	}
	policy, err := ps.policyRepo.GetByUUID(ctx, tx, policyUUID)
	if err != nil {
		return nil, fmt.Errorf("policy %s not found: %w", policyUUID, err)
	}

	var incoming types.Premium
	if err := decodeRecord(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to decode premium record: %w", err)
	}
	incoming.PolicyID = policy.ID

	if rawPayerUUID, ok := data["payer_uuid"]; ok && rawPayerUUID != nil {
		payerUUID, err := parseUUIDValue(rawPayerUUID)
		if err != nil {
			return nil, err
		}
		payer, err := ps.payerRepo.GetByUUID(ctx, tx, payerUUID)
		if err != nil {
			return nil, err
		}
		if payer != nil {
			incoming.PayerID = &payer.ID
		}
	}

	if raw, ok := data["uuid"]; ok {
		premiumUUID, err := parseUUIDValue(raw)
		if err != nil {
			return nil, err
		}
		existing, err := ps.premiumRepo.GetByUUID(ctx, tx, premiumUUID)
		if err != nil {
			return nil, fmt.Errorf("premium %s not found: %w", premiumUUID, err)
		}
		incoming.ID = existing.ID
		incoming.UUID = existing.UUID
		return ps.premiumRepo.Update(ctx, tx, &incoming)
	}
	incoming.ID = 0
	return ps.premiumRepo.Create(ctx, tx, &incoming)
}
