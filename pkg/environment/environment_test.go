package environment_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandpajoe1980/temple3/pkg/environment"
)

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(t.Context(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))
	assert.True(t, environment.IsProduction(ctx))

	assert.Empty(t, environment.FromContext(t.Context()))
	assert.False(t, environment.IsProduction(t.Context()))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var seen environment.Environment
	h := environment.Middleware(environment.Staging)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = environment.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, environment.Staging, seen)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(t.Context(), environment.Development)
	attr, ok := environment.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "env", attr.Key)
	assert.Equal(t, "development", attr.Value.String())

	_, ok = environment.LoggerExtractor()(t.Context())
	assert.False(t, ok)
}
