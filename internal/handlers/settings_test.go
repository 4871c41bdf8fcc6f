package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportchat-backend/internal/models"
	"supportchat-backend/internal/services"
)

type stubSettingsStore struct {
	current   *models.Settings
	err       error
	updateErr error
	updated   *models.UpdateSettingsRequest
}

func (s *stubSettingsStore) Current(ctx context.Context) (*models.Settings, error) {
	return s.current, s.err
}

func (s *stubSettingsStore) Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.Settings, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updated = &req
	s.current = &models.Settings{
		EmailAddress:       req.EmailAddress,
		BotDisplayName:     req.BotDisplayName,
		ConversationHeader: req.ConversationHeader,
		Hosts:              req.Hosts,
	}
	return s.current, nil
}

func TestSettingsGet_IncludesSingleHostWarning(t *testing.T) {
	store := &stubSettingsStore{current: configuredSettings("http://localhost:5000")}
	h := NewSettingsHandler(store, zerolog.Nop())

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.SettingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "support@example.com", resp.Settings.EmailAddress)
	assert.Equal(t, models.HostList{"http://localhost:5000"}, resp.Settings.Hosts)
	assert.Equal(t, []string{
		"Currently, we only support a single host. This means that only the first entry will be used.",
	}, resp.Warnings)
}

func TestSettingsGet_StoreError(t *testing.T) {
	h := NewSettingsHandler(&stubSettingsStore{err: errors.New("db down")}, zerolog.Nop())

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/settings", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "INTERNAL_ERROR")
}

func TestSettingsUpdate_AcceptsHostText(t *testing.T) {
	store := &stubSettingsStore{}
	h := NewSettingsHandler(store, zerolog.Nop())

	body := `{"email_address":"support@example.com","bot_display_name":"Helper","hosts":"http://a:5000\r\nhttp://b:5000\r\n"}`
	rr := httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, store.updated)
	assert.Equal(t, models.HostList{"http://a:5000", "http://b:5000"}, store.updated.Hosts)
}

func TestSettingsUpdate_ValidationError(t *testing.T) {
	store := &stubSettingsStore{updateErr: &services.ValidationError{Fields: map[string]string{"hosts": "At least one host is required"}}}
	h := NewSettingsHandler(store, zerolog.Nop())

	rr := httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(`{"hosts":[]}`)))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "At least one host is required", resp.Error.Fields["hosts"])
}

func TestSettingsUpdate_InvalidBody(t *testing.T) {
	h := NewSettingsHandler(&stubSettingsStore{}, zerolog.Nop())

	rr := httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/api/v1/admin/settings", strings.NewReader(`{"hosts":42}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
