// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mitv-server/ledger"
	"github.com/danielhkuo/mitv-server/middleware"
	"github.com/danielhkuo/mitv-server/models"
	"github.com/danielhkuo/mitv-server/session"
	"github.com/danielhkuo/mitv-server/uploads"
)

type ResellerHandler struct {
	ledger  *ledger.Ledger
	uploads *uploads.Store
}

func NewResellerHandler(led *ledger.Ledger, files *uploads.Store) *ResellerHandler {
	return &ResellerHandler{ledger: led, uploads: files}
}

// Activate handles POST /api/reseller/activate
func (h *ResellerHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req models.ActivateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MAC == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mac is required")
		return
	}

	expires, err := h.ledger.Activate(r.Context(), req.MAC, req.Password, req.DurationDays, req.M3UURL)
	if errors.Is(err, ledger.ErrInvalidDuration) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_days must be a positive integer")
		return
	}
	if err != nil {
		serviceError(w, err, "activation failed")
		return
	}

	operator, _ := middleware.OperatorFromContext(r.Context())
	slog.Info("device activated",
		"mac", req.MAC,
		"days", req.DurationDays,
		"expires_at", expires,
		"operator", operatorName(operator),
	)

	middleware.JSONResponse(w, http.StatusOK, models.ActivateResponse{
		OK:        true,
		ExpiresAt: expires,
	})
}

// Deactivate handles POST /api/reseller/deactivate
func (h *ResellerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	var req models.DeactivateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.MAC == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mac is required")
		return
	}

	err := h.ledger.Deactivate(r.Context(), req.MAC)
	if errors.Is(err, ledger.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Device not found")
		return
	}
	if err != nil {
		serviceError(w, err, "deactivation failed")
		return
	}

	operator, _ := middleware.OperatorFromContext(r.Context())
	slog.Info("device deactivated", "mac", req.MAC, "operator", operatorName(operator))

	middleware.JSONResponse(w, http.StatusOK, models.DeactivateResponse{OK: true})
}

// Users handles GET /api/reseller/users
func (h *ResellerHandler) Users(w http.ResponseWriter, r *http.Request) {
	devices, err := h.ledger.ListAll(r.Context())
	if err != nil {
		serviceError(w, err, "device listing failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListUsersResponse{Users: devices})
}

// UploadM3U handles POST /api/reseller/uploadM3U
func (h *ResellerHandler) UploadM3U(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("list")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	url, size, err := h.uploads.Save(header.Filename, file)
	if err != nil {
		slog.Error("failed to store playlist", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	slog.Info("playlist uploaded",
		"url", url,
		"size", humanize.Bytes(uint64(size)),
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{OK: true, URL: url})
}

func operatorName(claims *session.Claims) string {
	if claims == nil {
		return ""
	}
	return claims.Username
}
