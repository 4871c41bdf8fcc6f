package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"supportchat-backend/internal/i18n"
	"supportchat-backend/internal/middleware"
	"supportchat-backend/internal/models"
)

type settingsStore interface {
	Current(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, req models.UpdateSettingsRequest) (*models.Settings, error)
}

// SettingsHandler exposes the chat settings to the administrator.
type SettingsHandler struct {
	settings settingsStore
	logger   zerolog.Logger
}

func NewSettingsHandler(settings settingsStore, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger.With().Str("component", "admin_settings").Logger(),
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Current(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load settings")
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.response(r, settings))
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	settings, err := h.settings.Update(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.logger.Info().Str("admin", middleware.GetAdmin(r.Context())).Msg("settings saved")
	writeJSON(w, http.StatusOK, h.response(r, settings))
}

func (h *SettingsHandler) response(r *http.Request, settings *models.Settings) models.SettingsResponse {
	return models.SettingsResponse{
		Settings: settings,
		Warnings: []string{i18n.FromRequest(r).Sprintf(i18n.MsgSingleHostOnly)},
	}
}
