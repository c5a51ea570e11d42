package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type valuesEnv struct {
	db          *gorm.DB
	productRepo repos.ProductRepo
	insureeRepo repos.InsureeRepo
	familyRepo  repos.FamilyRepo
	service     PolicyValueService
}

func newValuesEnv(t *testing.T) *valuesEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&types.Product{}, &types.Family{}, &types.Insuree{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	log := logger.NewNop()
	env := &valuesEnv{
		db:          db,
		productRepo: repos.NewProductRepo(db, log),
		insureeRepo: repos.NewInsureeRepo(db, log),
		familyRepo:  repos.NewFamilyRepo(db, log),
	}
	env.service = NewPolicyValueService(db, log, env.productRepo, env.insureeRepo)
	return env
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (env *valuesEnv) seedProduct(t *testing.T, mutate func(*types.Product)) *types.Product {
	t.Helper()
	from, to := day(2020, 1, 1), day(2030, 12, 31)
	product := &types.Product{
		Code:            "VAL1",
		Name:            "Valuation product",
		InsurancePeriod: 12,
		MaxMembers:      6,
		DateFrom:        &from,
		DateTo:          &to,
		Audit:           types.Audit{ValidityFrom: day(2020, 1, 1)},
	}
	if mutate != nil {
		mutate(product)
	}
	created, err := env.productRepo.Create(context.Background(), nil, product)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return created
}

func (env *valuesEnv) seedFamily(t *testing.T, dobs ...time.Time) *types.Family {
	t.Helper()
	ctx := context.Background()
	family, err := env.familyRepo.Create(ctx, nil, &types.Family{
		Audit: types.Audit{ValidityFrom: day(2020, 1, 1)},
	})
	if err != nil {
		t.Fatalf("failed to seed family: %v", err)
	}
	for i := range dobs {
		dob := dobs[i]
		_, err := env.insureeRepo.Create(ctx, nil, &types.Insuree{
			CHFID:    fmt.Sprintf("%09d", family.ID*100+uint(i)),
			LastName: "Member",
			Head:     i == 0,
			DOB:      &dob,
			FamilyID: &family.ID,
			Audit:    types.Audit{ValidityFrom: day(2020, 1, 1)},
		})
		if err != nil {
			t.Fatalf("failed to seed insuree: %v", err)
		}
	}
	return family
}

func proposedPolicy(product *types.Product, family *types.Family, enroll time.Time) *types.Policy {
	return &types.Policy{
		Stage:      types.PolicyStageNew,
		EnrollDate: &enroll,
		ProductID:  product.ID,
		FamilyID:   family.ID,
	}
}

func TestCompute_LumpSumWinsOverPerMemberPricing(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.LumpSum = decimal.NewFromInt(500)
		p.PremiumAdult = decimal.NewFromInt(100)
		p.PremiumChild = decimal.NewFromInt(50)
	})
	family := env.seedFamily(t, day(1980, 1, 1), day(2015, 1, 1))

	got, warnings, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warnings != nil {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if !got.Value.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected lump sum 500, got %s", got.Value)
	}
}

func TestCompute_PerMemberPricingSplitsAdultsAndChildren(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.PremiumAdult = decimal.NewFromInt(100)
		p.PremiumChild = decimal.NewFromInt(40)
	})
	// Two adults, one child aged 10 on the enroll date.
	family := env.seedFamily(t, day(1980, 1, 1), day(1985, 3, 3), day(2016, 4, 1))

	got, warnings, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warnings != nil {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if !got.Value.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected 2x100 + 1x40 = 240, got %s", got.Value)
	}
}

func TestCompute_SeventeenYearOldCountsAsChild(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.PremiumAdult = decimal.NewFromInt(100)
		p.PremiumChild = decimal.NewFromInt(40)
	})
	// Turns 18 the day after enrollment.
	family := env.seedFamily(t, day(2008, 5, 2))

	got, _, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Value.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected child rate 40, got %s", got.Value)
	}
}

func TestCompute_FillsStartAndExpiryFromInsurancePeriod(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.LumpSum = decimal.NewFromInt(100)
		p.InsurancePeriod = 6
	})
	family := env.seedFamily(t, day(1980, 1, 1))

	got, _, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.StartDate == nil || !got.StartDate.Equal(day(2026, 5, 1)) {
		t.Fatalf("expected start 2026-05-01, got %v", got.StartDate)
	}
	if got.ExpiryDate == nil || !got.ExpiryDate.Equal(day(2026, 10, 31)) {
		t.Fatalf("expected expiry 2026-10-31, got %v", got.ExpiryDate)
	}
}

func TestCompute_ExplicitStartDateDrivesExpiry(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.LumpSum = decimal.NewFromInt(100)
	})
	family := env.seedFamily(t, day(1980, 1, 1))

	proposed := proposedPolicy(product, family, day(2026, 5, 1))
	start := day(2026, 6, 1)
	proposed.StartDate = &start

	got, _, err := env.service.Compute(context.Background(), nil, proposed, family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ExpiryDate == nil || !got.ExpiryDate.Equal(day(2027, 5, 31)) {
		t.Fatalf("expected expiry 2027-05-31, got %v", got.ExpiryDate)
	}
}

func TestCompute_WarnsWhenProductIsNotActive(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.LumpSum = decimal.NewFromInt(100)
		to := day(2025, 12, 31)
		p.DateTo = &to
	})
	family := env.seedFamily(t, day(1980, 1, 1))

	_, warnings, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Message != "policy.validation.product_not_active" {
		t.Fatalf("expected a product_not_active warning, got %v", warnings)
	}
}

func TestCompute_WarnsWhenFamilyExceedsMaxMembers(t *testing.T) {
	env := newValuesEnv(t)
	product := env.seedProduct(t, func(p *types.Product) {
		p.LumpSum = decimal.NewFromInt(100)
		p.MaxMembers = 2
	})
	family := env.seedFamily(t, day(1980, 1, 1), day(1985, 1, 1), day(2010, 1, 1))

	_, warnings, err := env.service.Compute(context.Background(), nil, proposedPolicy(product, family, day(2026, 5, 1)), family, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Message != "policy.validation.too_many_members" {
		t.Fatalf("expected a too_many_members warning, got %v", warnings)
	}
}
