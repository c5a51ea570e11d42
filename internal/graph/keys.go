package graph

import (
	"strings"
	"unicode"
)

// snakeCaseKeys rewrites the camelCase argument keys the GraphQL layer
// produces into the snake_case keys the owning services expect, recursing
// into nested maps and lists. Values are never touched.
func snakeCaseKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[toSnake(k)] = snakeCaseKeys(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = snakeCaseKeys(item)
		}
		return out
	default:
		return v
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
