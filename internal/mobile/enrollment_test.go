package mobile

import (
	"context"
	"strings"
	"testing"

	"github.com/telmahealth/mobile-gateway/internal/types"
)

func enrollmentPayload() map[string]any {
	return map[string]any{
		"family": map[string]any{
			"id":   37, // client-local, must be discarded
			"uuid": nil,
			"head_insuree": map[string]any{
				"chf_id":      "070707070",
				"last_name":   "Ilunga",
				"other_names": "Patrice",
				"gender":      "M",
				"phone":       nil,
			},
			"address": "12 Main Street",
		},
		"insurees": []any{
			map[string]any{
				"chf_id":      "070707071",
				"last_name":   "Ilunga",
				"other_names": "Marie",
				"gender":      "F",
				"head":        false,
			},
		},
		"policies": []any{
			map[string]any{
				"mobile_id":   1,
				"enroll_date": "2026-05-01",
				"start_date":  "2026-05-01",
				"expiry_date": "2027-04-30",
				"value":       "100",
				"uuid":        nil,
			},
		},
		"premiums": []any{
			map[string]any{
				"policy_id": 1,
				"amount":    "100",
				"receipt":   "RCPT-1",
				"pay_date":  "2026-05-01",
				"pay_type":  "C",
			},
		},
	}
}

func TestEnroll_CreatesFamilyInsureesPoliciesAndPremiums(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, allEnrollmentRights(), nil)

	errs := env.enrollment.Enroll(ctx, user, enrollmentPayload())
	if errs != nil {
		t.Fatalf("expected success, got %v", errs)
	}

	if got := env.count(t, &types.Family{}); got != 1 {
		t.Fatalf("expected 1 family, got %d", got)
	}
	if got := env.count(t, &types.Insuree{}); got != 2 {
		t.Fatalf("expected 2 insurees (head + 1), got %d", got)
	}
	if got := env.count(t, &types.Policy{}); got != 1 {
		t.Fatalf("expected 1 policy, got %d", got)
	}
	if got := env.count(t, &types.Premium{}); got != 1 {
		t.Fatalf("expected 1 premium, got %d", got)
	}

	var policy types.Policy
	if err := env.db.First(&policy).Error; err != nil {
		t.Fatalf("failed to load policy: %v", err)
	}
	if policy.Status != types.PolicyStatusIdle || policy.Stage != types.PolicyStageNew {
		t.Fatalf("expected new policy to default to idle/new, got %d/%s", policy.Status, policy.Stage)
	}
	if policy.AuditUserID != int(user.ID) {
		t.Fatalf("expected audit user %d, got %d", user.ID, policy.AuditUserID)
	}

	var premium types.Premium
	if err := env.db.First(&premium).Error; err != nil {
		t.Fatalf("failed to load premium: %v", err)
	}
	if premium.PolicyID != policy.ID {
		t.Fatalf("expected premium linked to policy %d, got %d", policy.ID, premium.PolicyID)
	}
	if premium.IsOffline {
		t.Fatalf("expected premium to be marked as not offline")
	}

	var head types.Insuree
	if err := env.db.Where("head = ?", true).First(&head).Error; err != nil {
		t.Fatalf("failed to load head insuree: %v", err)
	}
	var family types.Family
	if err := env.db.First(&family).Error; err != nil {
		t.Fatalf("failed to load family: %v", err)
	}
	if family.HeadInsureeID != head.ID {
		t.Fatalf("expected family head %d, got %d", head.ID, family.HeadInsureeID)
	}
	if family.ID == 37 {
		t.Fatalf("client-supplied family id must not be honoured")
	}
}

func TestEnroll_MapsPremiumsToTheRightPolicies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, allEnrollmentRights(), nil)

	payload := enrollmentPayload()
	payload["policies"] = []any{
		map[string]any{"mobile_id": 1, "enroll_date": "2026-05-01", "start_date": "2026-05-01", "expiry_date": "2027-04-30", "value": "100"},
		map[string]any{"mobile_id": 2, "enroll_date": "2026-05-01", "start_date": "2026-05-01", "expiry_date": "2027-04-30", "value": "200"},
	}
	// Premiums reference the policies in reverse order.
	payload["premiums"] = []any{
		map[string]any{"policy_id": 2, "amount": "200", "receipt": "FOR-POLICY-2", "pay_date": "2026-05-01", "pay_type": "C"},
		map[string]any{"policy_id": 1, "amount": "100", "receipt": "FOR-POLICY-1", "pay_date": "2026-05-01", "pay_type": "C"},
	}

	if errs := env.enrollment.Enroll(ctx, user, payload); errs != nil {
		t.Fatalf("expected success, got %v", errs)
	}

	var premiums []types.Premium
	if err := env.db.Order("id").Find(&premiums).Error; err != nil {
		t.Fatalf("failed to load premiums: %v", err)
	}
	if len(premiums) != 2 {
		t.Fatalf("expected 2 premiums, got %d", len(premiums))
	}
	for _, premium := range premiums {
		var policy types.Policy
		if err := env.db.First(&policy, premium.PolicyID).Error; err != nil {
			t.Fatalf("failed to load policy %d: %v", premium.PolicyID, err)
		}
		if !premium.Amount.Equal(policy.Value) {
			t.Fatalf("premium %s is linked to the wrong policy (amount %s, value %s)",
				premium.Receipt, premium.Amount, policy.Value)
		}
	}
}

func TestEnroll_AnonymousCallerIsRejected(t *testing.T) {
	env := newTestEnv(t)

	errs := env.enrollment.Enroll(context.Background(), nil, enrollmentPayload())
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Message != FailedToEnrollMessage {
		t.Fatalf("unexpected message %q", errs[0].Message)
	}
	if !strings.Contains(errs[0].Detail, "authentication_required") {
		t.Fatalf("unexpected detail %q", errs[0].Detail)
	}
	if got := env.count(t, &types.Family{}); got != 0 {
		t.Fatalf("expected zero writes, got %d families", got)
	}
}

func TestEnroll_MissingOneRightWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	rights := allEnrollmentRights()
	user := env.createUser(t, rights[:len(rights)-1], nil) // drop update premiums

	errs := env.enrollment.Enroll(context.Background(), user, enrollmentPayload())
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !strings.Contains(errs[0].Detail, "unauthorized") {
		t.Fatalf("unexpected detail %q", errs[0].Detail)
	}
	if got := env.count(t, &types.Family{}); got != 0 {
		t.Fatalf("expected zero families, got %d", got)
	}
	if got := env.count(t, &types.Insuree{}); got != 0 {
		t.Fatalf("expected zero insurees, got %d", got)
	}
}

func TestEnroll_FailingPremiumRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, allEnrollmentRights(), nil)

	payload := enrollmentPayload()
	// The premium references a mobile policy id no policy carries, so step 4
	// fails after family, insurees and policy were already written.
	payload["premiums"] = []any{
		map[string]any{"policy_id": 99, "amount": "100", "receipt": "RCPT-1", "pay_date": "2026-05-01", "pay_type": "C"},
	}

	errs := env.enrollment.Enroll(context.Background(), user, payload)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if got := env.count(t, &types.Family{}); got != 0 {
		t.Fatalf("expected family write to be rolled back, got %d", got)
	}
	if got := env.count(t, &types.Insuree{}); got != 0 {
		t.Fatalf("expected insuree writes to be rolled back, got %d", got)
	}
	if got := env.count(t, &types.Policy{}); got != 0 {
		t.Fatalf("expected policy writes to be rolled back, got %d", got)
	}
	if got := env.count(t, &types.Premium{}); got != 0 {
		t.Fatalf("expected premium writes to be rolled back, got %d", got)
	}
}

func TestEnroll_UpdatesExistingFamilyByHeadCHFID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, allEnrollmentRights(), nil)

	if errs := env.enrollment.Enroll(ctx, user, enrollmentPayload()); errs != nil {
		t.Fatalf("first enrollment failed: %v", errs)
	}
	payload := enrollmentPayload()
	payload["family"].(map[string]any)["address"] = "45 New Street"
	if errs := env.enrollment.Enroll(ctx, user, payload); errs != nil {
		t.Fatalf("second enrollment failed: %v", errs)
	}

	if got := env.count(t, &types.Family{}); got != 1 {
		t.Fatalf("expected the same family to be updated, got %d rows", got)
	}
	if got := env.count(t, &types.Insuree{}); got != 2 {
		t.Fatalf("expected insurees to be updated in place, got %d rows", got)
	}
	var family types.Family
	if err := env.db.First(&family).Error; err != nil {
		t.Fatalf("failed to load family: %v", err)
	}
	if family.Address != "45 New Street" {
		t.Fatalf("expected the address to be updated, got %q", family.Address)
	}
}
