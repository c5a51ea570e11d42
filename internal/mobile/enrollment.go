package mobile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/services"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// EnrollmentService processes a full mobile enrollment bundle: one family,
// its insurees, one or more policies and their premiums, created or updated
// together in a single transaction. A nil return means success; any failure
// rolls everything back and comes back as an error list.
type EnrollmentService interface {
	Enroll(ctx context.Context, user *types.User, data map[string]any) []types.MutationError
}

type enrollmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	cfg            *Config
	familyService  services.FamilyService
	insureeService services.InsureeService
	policyService  services.PolicyService
	premiumService services.PremiumService
	now            func() time.Time
}

func NewEnrollmentService(
	db *gorm.DB,
	log *logger.Logger,
	cfg *Config,
	familyService services.FamilyService,
	insureeService services.InsureeService,
	policyService services.PolicyService,
	premiumService services.PremiumService,
) EnrollmentService {
	return &enrollmentService{
		db:             db,
		log:            log.With("service", "EnrollmentService"),
		cfg:            cfg,
		familyService:  familyService,
		insureeService: insureeService,
		policyService:  policyService,
		premiumService: premiumService,
		now:            time.Now,
	}
}

func (es *enrollmentService) Enroll(ctx context.Context, user *types.User, data map[string]any) []types.MutationError {
	es.log.Info("Receiving new mobile enrollment request")
	if err := es.enroll(ctx, user, data); err != nil {
		es.log.Error("Mobile enrollment failed", "error", err)
		return errorResult(err)
	}
	return nil
}

func (es *enrollmentService) enroll(ctx context.Context, user *types.User, data map[string]any) error {
	if user == nil || user.ID == 0 {
		return ErrAuthenticationRequired
	}
	for _, group := range es.cfg.EnrollmentRights() {
		if !user.HasRights(group) {
			return ErrPermissionDenied
		}
	}

	// Either everything succeeds, or everything fails.
	return es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := es.now()
		cleaned := DeleteNone(data)
		familyData, ok := cleaned["family"].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: family record is required", ErrValidation)
		}
		insureeData := asMapSlice(cleaned["insurees"])
		policyData := asMapSlice(cleaned["policies"])
		premiumData := asMapSlice(cleaned["premiums"])

		// 1 - The family with its head insuree. A client-supplied id is
		// discarded: matching is by natural key only.
		delete(familyData, "id")
		StampAudit(familyData, int(user.ID), now)
		family, err := es.familyService.CreateOrUpdate(ctx, tx, user, familyData)
		if err != nil {
			return fmt.Errorf("failed to create or update family: %w", err)
		}
		es.log.Info("Created/Updated family", "family_id", family.ID)

		// 2 - The remaining insurees, in submission order.
		for _, insuree := range insureeData {
			StampAudit(insuree, int(user.ID), now)
			insuree["family_id"] = family.ID
			if _, err := es.insureeService.CreateOrUpdate(ctx, tx, user, insuree); err != nil {
				return fmt.Errorf("failed to create or update insuree: %w", err)
			}
		}

		// 3 - Policies. The mobile app numbers its policies locally; premiums
		// reference those numbers, so keep a mapping to the backend uuids.
		policyIDsMapping := map[int]uuid.UUID{}
		for _, policy := range policyData {
			mobileID, ok := asInt(policy["mobile_id"])
			if !ok {
				return fmt.Errorf("%w: policy record has no mobile_id", ErrValidation)
			}
			delete(policy, "mobile_id")
			StampAudit(policy, int(user.ID), now)
			policy["family_id"] = family.ID

			if _, hasUUID := policy["uuid"]; !hasUUID {
				// Pure creation: the web client sets these before calling the
				// policy service, so the mobile path has to as well.
				policy["status"] = types.PolicyStatusIdle
				policy["stage"] = types.PolicyStageNew
			}

			created, err := es.policyService.UpdateOrCreate(ctx, tx, user, policy)
			if err != nil {
				return fmt.Errorf("failed to create or update policy: %w", err)
			}
			policyIDsMapping[mobileID] = created.UUID
		}

		// 4 - Premiums, resolved through the mapping built in step 3.
		for _, premium := range premiumData {
			StampAudit(premium, int(user.ID), now)
			mobilePolicyID, ok := asInt(premium["policy_id"])
			if !ok {
				return fmt.Errorf("%w: premium record has no policy_id", ErrValidation)
			}
			delete(premium, "policy_id")
			policyUUID, ok := policyIDsMapping[mobilePolicyID]
			if !ok {
				return fmt.Errorf("%w: premium references unknown policy mobile_id %d", ErrValidation, mobilePolicyID)
			}
			premium["policy_uuid"] = policyUUID
			premium["is_offline"] = false
			if _, err := es.premiumService.CreateOrUpdate(ctx, tx, user, premium); err != nil {
				return fmt.Errorf("failed to create or update premium: %w", err)
			}
		}

		es.log.Info("Mobile enrollment processed successfully", "family_id", family.ID)
		return nil
	})
}
