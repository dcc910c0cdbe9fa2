package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/abrystyle/ritualesbienestar/internal/httpx"
)

// Error classes mirror the pipeline's failure taxonomy: fetch failures,
// markup that defeats every selector, derived records breaking an invariant,
// and file writes.
const (
	ErrorFetch      = "fetch"
	ErrorParse      = "parse"
	ErrorValidation = "validation"
	ErrorWrite      = "write"
	ErrorRateLimit  = "rate_limit"
	ErrorUnknown    = "unknown"
)

func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		if fe.Status == http.StatusTooManyRequests {
			return ErrorRateLimit
		}
		return ErrorFetch
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorFetch
	}
	return ErrorUnknown
}
