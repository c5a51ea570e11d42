package services

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// decodeRecord maps a request payload onto a model struct. Payloads arrive as
// generic maps (the transport cannot send typed values), so dates may be
// "2006-01-02" strings, amounts may be strings or numbers, and uuids are
// strings. Unknown keys are ignored, matching the legacy services.
func decodeRecord(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decodeTimeHook,
			decodeDecimalHook,
			decodeUUIDHook,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
)

func decodeTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType || from.Kind() != reflect.String {
		return data, nil
	}
	raw := data.(string)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as a date", raw)
	}
	return t, nil
}

func decodeDecimalHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return data, nil
	}
}

func decodeUUIDHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != uuidType || from.Kind() != reflect.String {
		return data, nil
	}
	return uuid.Parse(data.(string))
}

// parseUUIDValue accepts either a uuid.UUID (set by internal callers) or its
// string form (set by the transport).
func parseUUIDValue(v any) (uuid.UUID, error) {
	switch val := v.(type) {
	case uuid.UUID:
		return val, nil
	case string:
		return uuid.Parse(val)
	default:
		return uuid.Nil, fmt.Errorf("value %v is not a uuid", v)
	}
}
