package mobile

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/services"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

type testEnv struct {
	db  *gorm.DB
	cfg *Config

	enrollment EnrollmentService
	renewal    RenewalService

	userRepo         repos.UserRepo
	moduleConfigRepo repos.ModuleConfigurationRepo
	familyRepo       repos.FamilyRepo
	insureeRepo      repos.InsureeRepo
	policyRepo       repos.PolicyRepo
	premiumRepo      repos.PremiumRepo
	renewalRepo      repos.PolicyRenewalRepo
	payerRepo        repos.PayerRepo
	productRepo      repos.ProductRepo
	officerRepo      repos.OfficerRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.ModuleConfiguration{},
		&types.Control{},
		&types.Family{},
		&types.Insuree{},
		&types.Product{},
		&types.Officer{},
		&types.Policy{},
		&types.PolicyRenewal{},
		&types.Payer{},
		&types.Premium{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := logger.NewNop()
	env := &testEnv{
		db:               db,
		userRepo:         repos.NewUserRepo(db, log),
		moduleConfigRepo: repos.NewModuleConfigurationRepo(db, log),
		familyRepo:       repos.NewFamilyRepo(db, log),
		insureeRepo:      repos.NewInsureeRepo(db, log),
		policyRepo:       repos.NewPolicyRepo(db, log),
		premiumRepo:      repos.NewPremiumRepo(db, log),
		renewalRepo:      repos.NewPolicyRenewalRepo(db, log),
		payerRepo:        repos.NewPayerRepo(db, log),
		productRepo:      repos.NewProductRepo(db, log),
		officerRepo:      repos.NewOfficerRepo(db, log),
	}

	cfg := DefaultConfig()
	env.cfg = &cfg

	insureeService := services.NewInsureeService(db, log, env.insureeRepo)
	familyService := services.NewFamilyService(db, log, env.familyRepo, env.insureeRepo, insureeService)
	policyService := services.NewPolicyService(db, log, env.policyRepo)
	premiumService := services.NewPremiumService(db, log, env.premiumRepo, env.policyRepo, env.payerRepo)
	valueService := services.NewPolicyValueService(db, log, env.productRepo, env.insureeRepo)
	processService := services.NewPolicyProcessService(db, log, env.policyRepo, env.productRepo, env.familyRepo, env.officerRepo)

	env.enrollment = NewEnrollmentService(db, log, env.cfg, familyService, insureeService, policyService, premiumService)
	env.renewal = NewRenewalService(db, log, env.cfg, env.renewalRepo, env.policyRepo, env.familyRepo, env.insureeRepo, env.payerRepo, valueService, processService, premiumService)
	return env
}

func allEnrollmentRights() []string {
	return []string{"101002", "101003", "101102", "101103", "101202", "101203", "101302", "101303"}
}

func renewalRights() []string {
	return []string{"101205", "101302"}
}

func (env *testEnv) createUser(t *testing.T, rights []string, officerID *uint) *types.User {
	t.Helper()
	user := &types.User{
		Username:  fmt.Sprintf("user-%d", time.Now().UnixNano()),
		Password:  "irrelevant",
		Rights:    datatypes.NewJSONSlice(rights),
		OfficerID: officerID,
	}
	created, err := env.userRepo.Create(context.Background(), nil, user)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return created
}

func (env *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := env.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (env *testEnv) seedProduct(t *testing.T, lumpSum decimal.Decimal, periodMonths int, from, to time.Time) *types.Product {
	t.Helper()
	product := &types.Product{
		Code:            "PROD1",
		Name:            "Test product",
		LumpSum:         lumpSum,
		MaxMembers:      6,
		InsurancePeriod: periodMonths,
		DateFrom:        &from,
		DateTo:          &to,
		Audit:           types.Audit{ValidityFrom: date(2020, 1, 1)},
	}
	created, err := env.productRepo.Create(context.Background(), nil, product)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return created
}

func (env *testEnv) seedOfficer(t *testing.T) *types.Officer {
	t.Helper()
	officer := &types.Officer{
		Code:     "OFF1",
		LastName: "Officer",
		Audit:    types.Audit{ValidityFrom: date(2020, 1, 1)},
	}
	created, err := env.officerRepo.Create(context.Background(), nil, officer)
	if err != nil {
		t.Fatalf("failed to seed officer: %v", err)
	}
	return created
}

// seedFamilyWithHead creates a family plus its head insuree directly through
// the repos, bypassing the enrollment flow.
func (env *testEnv) seedFamilyWithHead(t *testing.T, chfID string, dob time.Time) (*types.Family, *types.Insuree) {
	t.Helper()
	ctx := context.Background()
	family, err := env.familyRepo.Create(ctx, nil, &types.Family{
		Audit: types.Audit{ValidityFrom: date(2020, 1, 1)},
	})
	if err != nil {
		t.Fatalf("failed to seed family: %v", err)
	}
	head, err := env.insureeRepo.Create(ctx, nil, &types.Insuree{
		CHFID:    chfID,
		LastName: "Head",
		Head:     true,
		DOB:      &dob,
		FamilyID: &family.ID,
		Audit:    types.Audit{ValidityFrom: date(2020, 1, 1)},
	})
	if err != nil {
		t.Fatalf("failed to seed head insuree: %v", err)
	}
	family.HeadInsureeID = head.ID
	if _, err := env.familyRepo.Update(ctx, nil, family); err != nil {
		t.Fatalf("failed to link head insuree: %v", err)
	}
	return family, head
}

func (env *testEnv) seedRenewal(t *testing.T, family *types.Family, head *types.Insuree, product *types.Product, renewalDate time.Time) *types.PolicyRenewal {
	t.Helper()
	ctx := context.Background()
	enroll := renewalDate.AddDate(-1, 0, 0)
	expiry := renewalDate.AddDate(0, 0, -1)
	oldPolicy, err := env.policyRepo.Create(ctx, nil, &types.Policy{
		Stage:      types.PolicyStageNew,
		Status:     types.PolicyStatusExpired,
		EnrollDate: &enroll,
		StartDate:  &enroll,
		ExpiryDate: &expiry,
		Value:      decimal.NewFromInt(100),
		ProductID:  product.ID,
		FamilyID:   family.ID,
		Audit:      types.Audit{ValidityFrom: date(2020, 1, 1)},
	})
	if err != nil {
		t.Fatalf("failed to seed old policy: %v", err)
	}
	renewal, err := env.renewalRepo.Create(ctx, nil, &types.PolicyRenewal{
		RenewalDate:  &renewalDate,
		InsureeID:    head.ID,
		PolicyID:     oldPolicy.ID,
		NewProductID: product.ID,
		Audit:        types.Audit{ValidityFrom: date(2020, 1, 1)},
	})
	if err != nil {
		t.Fatalf("failed to seed renewal: %v", err)
	}
	return renewal
}
