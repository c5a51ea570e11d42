package mobile

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/services"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// RenewalInput is the payload of the renewal-and-premium mutation.
type RenewalInput struct {
	RenewalID   uint
	RenewalDate time.Time
	OfficerID   uint
	Receipt     string
	PayType     string
	Amount      decimal.Decimal
	PayerID     *uint
}

// RenewalService renews an expiring policy and records its premium in one
// transaction. The required amount is recomputed from the valuation rule
// before the submitted payment is accepted.
type RenewalService interface {
	RenewAndPay(ctx context.Context, user *types.User, input RenewalInput) []types.MutationError
}

type renewalService struct {
	db             *gorm.DB
	log            *logger.Logger
	cfg            *Config
	renewalRepo    repos.PolicyRenewalRepo
	policyRepo     repos.PolicyRepo
	familyRepo     repos.FamilyRepo
	insureeRepo    repos.InsureeRepo
	payerRepo      repos.PayerRepo
	valueService   services.PolicyValueService
	processService services.PolicyProcessService
	premiumService services.PremiumService
	now            func() time.Time
}

func NewRenewalService(
	db *gorm.DB,
	log *logger.Logger,
	cfg *Config,
	renewalRepo repos.PolicyRenewalRepo,
	policyRepo repos.PolicyRepo,
	familyRepo repos.FamilyRepo,
	insureeRepo repos.InsureeRepo,
	payerRepo repos.PayerRepo,
	valueService services.PolicyValueService,
	processService services.PolicyProcessService,
	premiumService services.PremiumService,
) RenewalService {
	return &renewalService{
		db:             db,
		log:            log.With("service", "RenewalService"),
		cfg:            cfg,
		renewalRepo:    renewalRepo,
		policyRepo:     policyRepo,
		familyRepo:     familyRepo,
		insureeRepo:    insureeRepo,
		payerRepo:      payerRepo,
		valueService:   valueService,
		processService: processService,
		premiumService: premiumService,
		now:            time.Now,
	}
}

func (rs *renewalService) RenewAndPay(ctx context.Context, user *types.User, input RenewalInput) []types.MutationError {
	rs.log.Info("Receiving new mobile policy renewal & premium request", "renewal_id", input.RenewalID)
	if err := rs.renewAndPay(ctx, user, input); err != nil {
		rs.log.Error("Mobile policy renewal failed", "renewal_id", input.RenewalID, "error", err)
		return errorResult(err)
	}
	return nil
}

func (rs *renewalService) renewAndPay(ctx context.Context, user *types.User, input RenewalInput) error {
	if user == nil || user.ID == 0 {
		return ErrAuthenticationRequired
	}
	for _, group := range rs.cfg.RenewalRights() {
		if !user.HasRights(group) {
			return ErrPermissionDenied
		}
	}

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		renewal, err := rs.renewalRepo.GetLiveByID(ctx, tx, input.RenewalID)
		if err != nil {
			return err
		}
		if renewal == nil {
			return fmt.Errorf("%w: unknown policy renewal id=%d", ErrNotFound, input.RenewalID)
		}

		oldPolicy, err := rs.policyRepo.GetByID(ctx, tx, renewal.PolicyID)
		if err != nil {
			return fmt.Errorf("failed to load renewed policy: %w", err)
		}
		insuree, err := rs.insureeRepo.GetByID(ctx, tx, renewal.InsureeID)
		if err != nil {
			return fmt.Errorf("failed to load renewal insuree: %w", err)
		}
		if insuree.FamilyID == nil {
			return fmt.Errorf("%w: insuree %d has no family", ErrValidation, insuree.ID)
		}
		family, err := rs.familyRepo.GetByID(ctx, tx, *insuree.FamilyID)
		if err != nil {
			return fmt.Errorf("failed to load renewal family: %w", err)
		}

		// Reproduce the calls the web client makes before creating a policy:
		// let the valuation rule fill in the dates and the required value.
		renewalDate := input.RenewalDate
		proposed := &types.Policy{
			Stage:      types.PolicyStageRenewed,
			EnrollDate: &renewalDate,
			StartDate:  &renewalDate,
			ProductID:  renewal.NewProductID,
			FamilyID:   family.ID,
		}
		computed, warnings, err := rs.valueService.Compute(ctx, tx, proposed, family, oldPolicy)
		if err != nil {
			return err
		}
		if len(warnings) > 0 {
			rs.log.Error("Policy preparation produced warnings", "renewal_id", input.RenewalID)
			return &downstreamErrorList{errs: warnings}
		}

		requiredValue := computed.Value
		switch input.Amount.Cmp(requiredValue) {
		case -1:
			return fmt.Errorf("%w: payment is too low to renew policy - required amount=%s, received amount=%s",
				ErrValidation, requiredValue.String(), input.Amount.String())
		case 0:
			rs.log.Info("The required amount matches the received amount")
		default:
			rs.log.Info("The received amount is higher than the required amount")
		}

		renewed := &types.Policy{
			Status:     types.PolicyStatusIdle,
			Stage:      types.PolicyStageRenewed,
			EnrollDate: &renewalDate,
			StartDate:  computed.StartDate,
			ExpiryDate: computed.ExpiryDate,
			Value:      requiredValue,
			ProductID:  renewal.NewProductID,
			FamilyID:   family.ID,
			OfficerID:  rs.officerFor(user, input),
		}
		renewed.ValidityFrom = rs.now()
		renewed.AuditUserID = int(user.ID)

		policy, procErrs, err := rs.processService.Process(ctx, tx, user, renewed)
		if err != nil {
			return err
		}
		if len(procErrs) > 0 {
			rs.log.Error("Policy processing reported errors", "renewal_id", input.RenewalID)
			return &downstreamErrorList{errs: procErrs}
		}

		premiumData := map[string]any{
			"policy_uuid":  policy.UUID,
			"amount":       input.Amount,
			"receipt":      input.Receipt,
			"pay_date":     renewalDate,
			"pay_type":     input.PayType,
			"is_photo_fee": false,
		}
		// An unresolvable payer is tolerated: the premium is simply recorded
		// without one.
		if input.PayerID != nil {
			payer, err := rs.payerRepo.GetByID(ctx, tx, *input.PayerID)
			if err != nil {
				return err
			}
			if payer != nil {
				premiumData["payer_uuid"] = payer.UUID
			}
		}
		StampAudit(premiumData, int(user.ID), rs.now())
		if _, err := rs.premiumService.CreateOrUpdate(ctx, tx, user, premiumData); err != nil {
			return fmt.Errorf("failed to create premium: %w", err)
		}

		rs.log.Info("Mobile policy renewal processed successfully", "renewal_id", input.RenewalID, "policy_id", policy.ID)
		return nil
	})
}

// The officer on the renewed policy comes from the caller's account; the
// submitted officerId is only a fallback for accounts without one.
func (rs *renewalService) officerFor(user *types.User, input RenewalInput) uint {
	if user.OfficerID != nil {
		return *user.OfficerID
	}
	return input.OfficerID
}
