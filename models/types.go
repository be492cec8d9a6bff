package models

import "time"

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ActivateRequest struct {
	MAC          string `json:"mac"`
	Password     string `json:"password"`
	DurationDays int    `json:"duration_days"`
	M3UURL       string `json:"m3u_url"`
}

type DeactivateRequest struct {
	MAC string `json:"mac"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
}

type ActivateResponse struct {
	OK        bool      `json:"ok"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DeactivateResponse struct {
	OK bool `json:"ok"`
}

type UploadResponse struct {
	OK  bool   `json:"ok"`
	URL string `json:"url"`
}

// CheckDeviceResponse is what the polling client sees: the effective-active
// verdict plus the playlist it should load. Nothing else is exposed.
type CheckDeviceResponse struct {
	Active    bool       `json:"active"`
	M3UURL    *string    `json:"m3u_url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type ListUsersResponse struct {
	Users []DeviceSummary `json:"users"`
}

// Domain types

// DeviceSummary is one row of the reseller dashboard. Active is the stored
// flag, not the effective predicate; the dashboard shows expiry alongside it.
type DeviceSummary struct {
	MAC       string     `json:"mac"`
	M3UURL    *string    `json:"m3u_url"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
