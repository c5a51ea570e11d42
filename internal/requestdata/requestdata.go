package requestdata

import (
	"context"

	"github.com/telmahealth/mobile-gateway/internal/types"
)

var requestDataKey = struct{}{}

// RequestData is the per-request state placed on the context by the auth
// middleware. User is nil for anonymous requests.
type RequestData struct {
	TokenString string
	User        *types.User
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

// GetUser returns the authenticated user, or nil when the request is
// anonymous.
func GetUser(ctx context.Context) *types.User {
	rd := GetRequestData(ctx)
	if rd == nil {
		return nil
	}
	return rd.User
}
