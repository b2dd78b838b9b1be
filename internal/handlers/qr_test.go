package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/launch-sus/internal/models"
)

func TestHandleQR(t *testing.T) {
	ctx := newTestContext()
	require.True(t, ctx.Rooms.PutIfAbsent("ABC123", models.NewRoom("ABC123")))

	rec := httptest.NewRecorder()
	ctx.HandleQR(rec, httptest.NewRequest(http.MethodGet, "/qr/ABC123", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleQRUnknownRoom(t *testing.T) {
	ctx := newTestContext()

	rec := httptest.NewRecorder()
	ctx.HandleQR(rec, httptest.NewRequest(http.MethodGet, "/qr/NOPE42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleQRMissingCode(t *testing.T) {
	ctx := newTestContext()

	rec := httptest.NewRecorder()
	ctx.HandleQR(rec, httptest.NewRequest(http.MethodGet, "/qr/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	ctx := newTestContext()

	rec := httptest.NewRecorder()
	ctx.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
