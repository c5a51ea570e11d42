package mobile

import (
	"errors"

	"github.com/telmahealth/mobile-gateway/internal/types"
)

// FailedToEnrollMessage is the single message code both mutations surface;
// callers distinguish failures only by the detail text.
const FailedToEnrollMessage = "core.mutation.failed_to_enroll"

// Internal failure kinds. They all flatten to the same external message but
// stay distinguishable for logging and tests.
var (
	ErrAuthenticationRequired = errors.New("mutation.authentication_required")
	ErrPermissionDenied       = errors.New("unauthorized")
	ErrNotFound               = errors.New("not_found")
	ErrValidation             = errors.New("validation_failed")
)

// downstreamErrorList carries structured errors or warnings produced by an
// owning service that must be surfaced verbatim instead of being flattened.
type downstreamErrorList struct {
	errs []types.MutationError
}

func (e *downstreamErrorList) Error() string {
	if len(e.errs) == 0 {
		return "downstream errors"
	}
	return e.errs[0].Message + ": " + e.errs[0].Detail
}

// errorResult converts an orchestration failure into the external error
// list. Downstream error lists pass through untouched; everything else
// becomes one generic entry with the original text as detail.
func errorResult(err error) []types.MutationError {
	var list *downstreamErrorList
	if errors.As(err, &list) {
		return list.errs
	}
	return []types.MutationError{{
		Message: FailedToEnrollMessage,
		Detail:  err.Error(),
	}}
}
