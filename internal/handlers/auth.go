package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"supportchat-backend/internal/models"
)

type loginService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, error)
}

type AuthHandler struct {
	authService loginService
}

func NewAuthHandler(authService loginService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	tokens, err := h.authService.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}
