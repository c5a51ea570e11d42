package mobile

import (
	"time"
)

// DeleteNone strips nil-valued keys from a payload, recursing into nested
// maps and into maps inside lists. The mobile transport cannot omit fields,
// and the owning services do not tolerate explicit nulls (a nil uuid would
// be taken literally). Mutates in place and returns the same map; pruning
// twice is a no-op. Nil entries that are direct list elements are kept.
func DeleteNone(data map[string]any) map[string]any {
	for key, value := range data {
		switch v := value.(type) {
		case nil:
			delete(data, key)
		case map[string]any:
			DeleteNone(v)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					DeleteNone(m)
				}
			}
		}
	}
	return data
}

// StampAudit sets the validity timestamp and acting-user id a record must
// carry before it reaches an owning service.
func StampAudit(data map[string]any, auditUserID int, now time.Time) {
	data["validity_from"] = now
	data["audit_user_id"] = auditUserID
}

func asMapSlice(v any) []map[string]any {
	switch items := v.(type) {
	case []map[string]any:
		return items
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
