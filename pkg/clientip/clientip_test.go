package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grandpajoe1980/temple3/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("prefers first valid X-Forwarded-For entry", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		req.RemoteAddr = "192.0.2.1:1234"

		assert.Equal(t, "203.0.113.7", clientip.GetIP(req))
	})

	t.Run("skips invalid forwarded entries", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "not-an-ip, 203.0.113.7")

		assert.Equal(t, "203.0.113.7", clientip.GetIP(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")

		assert.Equal(t, "203.0.113.9", clientip.GetIP(req))
	})

	t.Run("falls back to remote address", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"

		assert.Equal(t, "192.0.2.1", clientip.GetIP(req))
	})

	t.Run("normalizes IPv6", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "2001:0db8::0001")

		assert.Equal(t, "2001:db8::1", clientip.GetIP(req))
	})
}
