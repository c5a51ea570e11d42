package mobile

import (
	"reflect"
	"testing"
	"time"
)

func TestDeleteNone_RemovesNestedNilFields(t *testing.T) {
	data := map[string]any{
		"uuid":  nil,
		"chfId": "123456789",
		"family": map[string]any{
			"address": nil,
			"poverty": false,
		},
		"policies": []any{
			map[string]any{"mobile_id": 1, "value": nil},
			"not-a-map",
		},
	}

	got := DeleteNone(data)

	if _, ok := got["uuid"]; ok {
		t.Fatalf("expected top-level nil field to be removed")
	}
	family := got["family"].(map[string]any)
	if _, ok := family["address"]; ok {
		t.Fatalf("expected nested nil field to be removed")
	}
	if family["poverty"] != false {
		t.Fatalf("expected non-nil nested field to survive")
	}
	policy := got["policies"].([]any)[0].(map[string]any)
	if _, ok := policy["value"]; ok {
		t.Fatalf("expected nil field inside list element to be removed")
	}
}

func TestDeleteNone_MutatesInPlaceAndIsIdempotent(t *testing.T) {
	data := map[string]any{
		"a": nil,
		"b": map[string]any{"c": nil, "d": 1},
	}
	once := DeleteNone(data)
	snapshot := map[string]any{"b": map[string]any{"d": 1}}
	if !reflect.DeepEqual(data, snapshot) {
		t.Fatalf("expected the input map to be mutated in place, got %#v", data)
	}
	if !reflect.DeepEqual(once, snapshot) {
		t.Fatalf("unexpected result after one prune: %#v", once)
	}
	twice := DeleteNone(once)
	if !reflect.DeepEqual(twice, snapshot) {
		t.Fatalf("pruning twice changed the result: %#v", twice)
	}
}

func TestDeleteNone_KeepsNilListElements(t *testing.T) {
	data := map[string]any{
		"items": []any{nil, 1, nil},
	}
	got := DeleteNone(data)
	items := got["items"].([]any)
	if len(items) != 3 {
		t.Fatalf("expected nil list elements to be kept, got %#v", items)
	}
}

func TestStampAudit(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	data := map[string]any{"chf_id": "123"}
	StampAudit(data, 42, now)
	if data["validity_from"] != now {
		t.Fatalf("expected validity_from to be stamped")
	}
	if data["audit_user_id"] != 42 {
		t.Fatalf("expected audit_user_id to be stamped")
	}
}
