package shared_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/gemini-proxy/internal/api/shared"
	"github.com/phrazzld/gemini-proxy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Parallel()

	t.Run("within limit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`))
		body, err := shared.ReadBody(httptest.NewRecorder(), r, 64)
		require.NoError(t, err)
		assert.Equal(t, `{"text":"hi"}`, string(body))
	})

	t.Run("declared length over limit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 65)))
		_, err := shared.ReadBody(httptest.NewRecorder(), r, 64)
		assert.ErrorIs(t, err, domain.ErrRequestTooLarge)
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("a", 65))))
		r.ContentLength = -1
		_, err := shared.ReadBody(httptest.NewRecorder(), r, 64)
		assert.ErrorIs(t, err, domain.ErrRequestTooLarge)
	})

	t.Run("no limit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 1000)))
		body, err := shared.ReadBody(httptest.NewRecorder(), r, 0)
		require.NoError(t, err)
		assert.Len(t, body, 1000)
	})
}
