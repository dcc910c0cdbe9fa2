package observability

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abrystyle/ritualesbienestar/internal/httpx"
)

func TestSnapshotCounts(t *testing.T) {
	before := Snapshot()

	IncPagesFetched("extractor")
	IncProductsExtracted("extractor")
	IncProductsWritten("content")
	IncError(ErrorParse, "extractor")
	IncError("", "")
	ObserveRunDuration(2.0)

	after := Snapshot()
	assert.Equal(t, before.PagesFetched+1, after.PagesFetched)
	assert.Equal(t, before.ProductsExtracted+1, after.ProductsExtracted)
	assert.Equal(t, before.ProductsWritten+1, after.ProductsWritten)
	assert.Equal(t, before.ErrorsTotal+2, after.ErrorsTotal)
	assert.Equal(t, before.ErrorsByType[ErrorParse]+1, after.ErrorsByType[ErrorParse])
	assert.Equal(t, before.ErrorsByType[ErrorUnknown]+1, after.ErrorsByType[ErrorUnknown])
	assert.Greater(t, after.RunSecondsAvg, 0.0)
}

func TestClassifyFetchError(t *testing.T) {
	assert.Equal(t, ErrorUnknown, ClassifyFetchError(nil))
	assert.Equal(t, ErrorUnknown, ClassifyFetchError(errors.New("boom")))
	assert.Equal(t, ErrorFetch, ClassifyFetchError(&httpx.FetchError{Status: http.StatusNotFound}))
	assert.Equal(t, ErrorRateLimit, ClassifyFetchError(&httpx.FetchError{Status: http.StatusTooManyRequests}))
	assert.Equal(t, ErrorFetch, ClassifyFetchError(context.Canceled))

	wrapped := errors.Join(errors.New("detail"), &httpx.FetchError{Status: http.StatusBadGateway})
	assert.Equal(t, ErrorFetch, ClassifyFetchError(wrapped))
}
