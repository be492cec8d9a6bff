// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/mitv-server/ledger"
	"github.com/danielhkuo/mitv-server/middleware"
	"github.com/danielhkuo/mitv-server/models"
)

type CheckHandler struct {
	ledger *ledger.Ledger
}

func NewCheckHandler(led *ledger.Ledger) *CheckHandler {
	return &CheckHandler{ledger: led}
}

// CheckDevice handles GET /api/checkDevice
// Unauthenticated: the polling client only learns whether the device is
// effectively active and which playlist to load.
func (h *CheckHandler) CheckDevice(w http.ResponseWriter, r *http.Request) {
	mac := r.URL.Query().Get("mac")
	if mac == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mac required")
		return
	}

	st, err := h.ledger.Status(r.Context(), mac)
	if err != nil {
		serviceError(w, err, "device check failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckDeviceResponse{
		Active:    st.Active,
		M3UURL:    st.M3UURL,
		ExpiresAt: st.ExpiresAt,
	})
}
