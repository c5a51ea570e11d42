package mobile

import (
	"context"
	"reflect"
	"testing"

	"gorm.io/datatypes"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

func TestLoadConfig_DefaultsWhenNoRowStored(t *testing.T) {
	env := newTestEnv(t)

	cfg, err := LoadConfig(context.Background(), env.moduleConfigRepo, logger.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig()
	if !reflect.DeepEqual(*cfg, want) {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadConfig_StoredRowOverlaysDefaults(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.moduleConfigRepo.Upsert(context.Background(), nil, &types.ModuleConfiguration{
		Module: ModuleName,
		Config: datatypes.JSON(`{"gql_mutation_create_families_perms": ["200001", "200002"]}`),
	})
	if err != nil {
		t.Fatalf("failed to store configuration: %v", err)
	}

	cfg, err := LoadConfig(context.Background(), env.moduleConfigRepo, logger.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.CreateFamiliesPerms, []string{"200001", "200002"}) {
		t.Fatalf("expected stored perms to win, got %v", cfg.CreateFamiliesPerms)
	}
	// Keys absent from the stored blob keep their defaults.
	if !reflect.DeepEqual(cfg.RenewPoliciesPerms, []string{"101205"}) {
		t.Fatalf("expected default renew perms, got %v", cfg.RenewPoliciesPerms)
	}
}

func TestLoadConfig_InvalidStoredJSONIsAnError(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.moduleConfigRepo.Upsert(context.Background(), nil, &types.ModuleConfiguration{
		Module: ModuleName,
		Config: datatypes.JSON(`{not json`),
	})
	if err != nil {
		t.Fatalf("failed to store configuration: %v", err)
	}

	if _, err := LoadConfig(context.Background(), env.moduleConfigRepo, logger.NewNop()); err == nil {
		t.Fatalf("expected an error for a corrupt configuration blob")
	}
}

func TestEnrollmentRights_CoversAllEightGroups(t *testing.T) {
	cfg := DefaultConfig()
	groups := cfg.EnrollmentRights()
	if len(groups) != 8 {
		t.Fatalf("expected 8 right groups, got %d", len(groups))
	}
	var flat []string
	for _, group := range groups {
		flat = append(flat, group...)
	}
	if !reflect.DeepEqual(flat, allEnrollmentRights()) {
		t.Fatalf("unexpected enrollment rights %v", flat)
	}
}

func TestRenewalRights_RequiresRenewAndCreatePremium(t *testing.T) {
	cfg := DefaultConfig()
	groups := cfg.RenewalRights()
	if len(groups) != 2 {
		t.Fatalf("expected 2 right groups, got %d", len(groups))
	}
	var flat []string
	for _, group := range groups {
		flat = append(flat, group...)
	}
	if !reflect.DeepEqual(flat, renewalRights()) {
		t.Fatalf("unexpected renewal rights %v", flat)
	}
}
