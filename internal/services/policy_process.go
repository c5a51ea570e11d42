package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// PolicyProcessService is the shared creation/renewal entry point. It
// validates the assembled policy record and persists it; validation problems
// come back as a list the caller surfaces to the client.
type PolicyProcessService interface {
	Process(ctx context.Context, tx *gorm.DB, user *types.User, policy *types.Policy) (*types.Policy, []types.MutationError, error)
}

type policyProcessService struct {
	db          *gorm.DB
	log         *logger.Logger
	policyRepo  repos.PolicyRepo
	productRepo repos.ProductRepo
	familyRepo  repos.FamilyRepo
	officerRepo repos.OfficerRepo
}

func NewPolicyProcessService(db *gorm.DB, log *logger.Logger, policyRepo repos.PolicyRepo, productRepo repos.ProductRepo, familyRepo repos.FamilyRepo, officerRepo repos.OfficerRepo) PolicyProcessService {
	return &policyProcessService{
		db:          db,
		log:         log.With("service", "PolicyProcessService"),
		policyRepo:  policyRepo,
		productRepo: productRepo,
		familyRepo:  familyRepo,
		officerRepo: officerRepo,
	}
}

func (ps *policyProcessService) Process(ctx context.Context, tx *gorm.DB, user *types.User, policy *types.Policy) (*types.Policy, []types.MutationError, error) {
	errs := ps.validate(ctx, tx, policy)
	if len(errs) > 0 {
		return nil, errs, nil
	}
	created, err := ps.policyRepo.Create(ctx, tx, policy)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create policy: %w", err)
	}
	ps.log.Info("Policy processed", "policy_id", created.ID, "stage", created.Stage)
	return created, nil, nil
}

func (ps *policyProcessService) validate(ctx context.Context, tx *gorm.DB, policy *types.Policy) []types.MutationError {
	var errs []types.MutationError
	if _, err := ps.productRepo.GetByID(ctx, tx, policy.ProductID); err != nil {
		errs = append(errs, types.MutationError{
			Message: "policy.validation.unknown_product",
			Detail:  fmt.Sprintf("product %d: %v", policy.ProductID, err),
		})
	}
	if _, err := ps.familyRepo.GetByID(ctx, tx, policy.FamilyID); err != nil {
		errs = append(errs, types.MutationError{
			Message: "policy.validation.unknown_family",
			Detail:  fmt.Sprintf("family %d: %v", policy.FamilyID, err),
		})
	}
	if policy.OfficerID != 0 {
		if _, err := ps.officerRepo.GetByID(ctx, tx, policy.OfficerID); err != nil {
			errs = append(errs, types.MutationError{
				Message: "policy.validation.unknown_officer",
				Detail:  fmt.Sprintf("officer %d: %v", policy.OfficerID, err),
			})
		}
	}
	if policy.EnrollDate == nil || policy.StartDate == nil || policy.ExpiryDate == nil {
		errs = append(errs, types.MutationError{
			Message: "policy.validation.missing_dates",
			Detail:  "enroll, start and expiry dates are required",
		})
	} else if policy.ExpiryDate.Before(*policy.StartDate) {
		errs = append(errs, types.MutationError{
			Message: "policy.validation.invalid_dates",
			Detail:  fmt.Sprintf("expiry %s precedes start %s", policy.ExpiryDate.Format("2006-01-02"), policy.StartDate.Format("2006-01-02")),
		})
	}
	return errs
}
