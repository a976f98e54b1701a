package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/stretchr/testify/assert"
)

type fixedMode models.Mode

func (m fixedMode) Mode() models.Mode { return models.Mode(m) }

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		modes  ModeSource
		status int
	}{
		{"Admin", fixedMode(models.ADMIN), http.StatusOK},
		{"User", fixedMode(models.USER), http.StatusForbidden},
		{"Anonymous", fixedMode(models.ANONYMOUS), http.StatusForbidden},
		{"No Source", nil, http.StatusForbidden},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RequireAdmin(c.modes)(http.HandlerFunc(ok)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
			assert.Equal(t, c.status, rr.Code)
		})
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rr := httptest.NewRecorder()
	NewStructuredLogger(logger, fixedMode(models.USER))(http.HandlerFunc(ok)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summary", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, buf.String(), `"msg":"request completed"`)
	assert.Contains(t, buf.String(), `"path":"/summary"`)
	assert.Contains(t, buf.String(), `"session_mode":"user"`)
}
