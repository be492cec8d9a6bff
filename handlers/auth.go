// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mitv-server/middleware"
	"github.com/danielhkuo/mitv-server/models"
	"github.com/danielhkuo/mitv-server/session"
	"github.com/danielhkuo/mitv-server/store"
)

type AuthHandler struct {
	issuer *session.Issuer
}

func NewAuthHandler(issuer *session.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := h.issuer.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, session.ErrInvalidCredentials) {
		// Same status and body for unknown user and wrong password.
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	if err != nil {
		serviceError(w, err, "login failed")
		return
	}

	slog.Info("operator logged in", "username", req.Username)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token})
}

// serviceError maps store-level faults to HTTP statuses: connection
// failures are retryable 503s, everything unexpected is a scrubbed 500.
func serviceError(w http.ResponseWriter, err error, msg string) {
	slog.Error(msg, "error", err)
	if errors.Is(err, store.ErrUnavailable) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Store unavailable, retry later")
		return
	}
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
}
