package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

const adultAgeYears = 18

// PolicyValueService is the shared valuation rule: given a proposed policy it
// fills in the start date, expiry date and required value from the product
// definition and the family composition. Warnings block the policy from
// being created; they are returned to the caller untouched.
type PolicyValueService interface {
	Compute(ctx context.Context, tx *gorm.DB, proposed *types.Policy, family *types.Family, previous *types.Policy) (*types.Policy, []types.MutationError, error)
}

type policyValueService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	insureeRepo repos.InsureeRepo
}

func NewPolicyValueService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, insureeRepo repos.InsureeRepo) PolicyValueService {
	return &policyValueService{
		db:          db,
		log:         log.With("service", "PolicyValueService"),
		productRepo: productRepo,
		insureeRepo: insureeRepo,
	}
}

func (vs *policyValueService) Compute(ctx context.Context, tx *gorm.DB, proposed *types.Policy, family *types.Family, previous *types.Policy) (*types.Policy, []types.MutationError, error) {
	if proposed.EnrollDate == nil {
		return nil, nil, fmt.Errorf("proposed policy has no enroll date")
	}
	product, err := vs.productRepo.GetByID(ctx, tx, proposed.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("product %d not found: %w", proposed.ProductID, err)
	}
	members, err := vs.insureeRepo.ListLiveByFamily(ctx, tx, family.ID)
	if err != nil {
		return nil, nil, err
	}

	enrollDate := *proposed.EnrollDate
	var warnings []types.MutationError
	if product.DateFrom != nil && enrollDate.Before(*product.DateFrom) ||
		product.DateTo != nil && enrollDate.After(*product.DateTo) {
		warnings = append(warnings, types.MutationError{
			Message: "policy.validation.product_not_active",
			Detail:  fmt.Sprintf("product %s is not active on %s", product.Code, enrollDate.Format("2006-01-02")),
		})
	}
	if product.MaxMembers > 0 && len(members) > product.MaxMembers {
		warnings = append(warnings, types.MutationError{
			Message: "policy.validation.too_many_members",
			Detail:  fmt.Sprintf("family %d has %d members, product %s allows %d", family.ID, len(members), product.Code, product.MaxMembers),
		})
	}
	if len(warnings) > 0 {
		return proposed, warnings, nil
	}

	start := enrollDate
	if proposed.StartDate != nil {
		start = *proposed.StartDate
	}
	expiry := start.AddDate(0, product.InsurancePeriod, 0).AddDate(0, 0, -1)
	proposed.StartDate = &start
	proposed.ExpiryDate = &expiry
	proposed.Value = policyValue(product, members, enrollDate)
	return proposed, nil, nil
}

// policyValue is the product pricing rule: a lump sum when the product has
// one, otherwise a per-member price split between adults and children.
func policyValue(product *types.Product, members []*types.Insuree, onDate time.Time) decimal.Decimal {
	if product.LumpSum.IsPositive() {
		return product.LumpSum
	}
	adults, children := 0, 0
	for _, m := range members {
		if m.DOB == nil || ageAt(*m.DOB, onDate) >= adultAgeYears {
			adults++
		} else {
			children++
		}
	}
	adultPart := product.PremiumAdult.Mul(decimal.NewFromInt(int64(adults)))
	childPart := product.PremiumChild.Mul(decimal.NewFromInt(int64(children)))
	return adultPart.Add(childPart)
}

func ageAt(dob, onDate time.Time) int {
	years := onDate.Year() - dob.Year()
	if onDate.YearDay() < dob.YearDay() {
		years--
	}
	return years
}
