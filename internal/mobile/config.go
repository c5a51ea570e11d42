package mobile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/repos"
)

const ModuleName = "mobile"

// Config carries the permission right-groups each mobile mutation requires.
// It is loaded once at startup and treated as immutable afterwards; the
// orchestrators hold a reference and never write to it.
type Config struct {
	CreateFamiliesPerms []string `json:"gql_mutation_create_families_perms"`
	UpdateFamiliesPerms []string `json:"gql_mutation_update_families_perms"`
	CreateInsureesPerms []string `json:"gql_mutation_create_insurees_perms"`
	UpdateInsureesPerms []string `json:"gql_mutation_update_insurees_perms"`
	CreatePoliciesPerms []string `json:"gql_mutation_create_policies_perms"`
	EditPoliciesPerms   []string `json:"gql_mutation_edit_policies_perms"`
	RenewPoliciesPerms  []string `json:"gql_mutation_renew_policies_perms"`
	CreatePremiumsPerms []string `json:"gql_mutation_create_premiums_perms"`
	UpdatePremiumsPerms []string `json:"gql_mutation_update_premiums_perms"`
}

func DefaultConfig() Config {
	return Config{
		CreateFamiliesPerms: []string{"101002"},
		UpdateFamiliesPerms: []string{"101003"},
		CreateInsureesPerms: []string{"101102"},
		UpdateInsureesPerms: []string{"101103"},
		CreatePoliciesPerms: []string{"101202"},
		EditPoliciesPerms:   []string{"101203"},
		RenewPoliciesPerms:  []string{"101205"},
		CreatePremiumsPerms: []string{"101302"},
		UpdatePremiumsPerms: []string{"101303"},
	}
}

// LoadConfig fetches the stored module configuration, falling back to the
// defaults when no row exists. An unreachable configuration store is an
// error; callers are expected to treat it as fatal at startup.
func LoadConfig(ctx context.Context, repo repos.ModuleConfigurationRepo, log *logger.Logger) (*Config, error) {
	cfg := DefaultConfig()
	stored, err := repo.GetByModule(ctx, nil, ModuleName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s module configuration: %w", ModuleName, err)
	}
	if stored == nil {
		log.Info("No stored configuration for module, using defaults", "module", ModuleName)
		return &cfg, nil
	}
	if err := json.Unmarshal(stored.Config, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s module configuration: %w", ModuleName, err)
	}
	log.Info("Loaded stored module configuration", "module", ModuleName)
	return &cfg, nil
}

// EnrollmentRights lists the right-groups the enrollment mutation requires.
// The caller must hold every group in full.
func (c *Config) EnrollmentRights() [][]string {
	return [][]string{
		c.CreateFamiliesPerms,
		c.UpdateFamiliesPerms,
		c.CreateInsureesPerms,
		c.UpdateInsureesPerms,
		c.CreatePoliciesPerms,
		c.EditPoliciesPerms,
		c.CreatePremiumsPerms,
		c.UpdatePremiumsPerms,
	}
}

// RenewalRights lists the right-groups the renewal-and-premium mutation
// requires.
func (c *Config) RenewalRights() [][]string {
	return [][]string{
		c.RenewPoliciesPerms,
		c.CreatePremiumsPerms,
	}
}
