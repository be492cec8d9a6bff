// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/mitv-server/cliparse"
	"github.com/danielhkuo/mitv-server/handlers"
	"github.com/danielhkuo/mitv-server/ledger"
	"github.com/danielhkuo/mitv-server/middleware"
	"github.com/danielhkuo/mitv-server/operators"
	"github.com/danielhkuo/mitv-server/session"
	"github.com/danielhkuo/mitv-server/store"
	"github.com/danielhkuo/mitv-server/uploads"
)

func NewRouter(db *store.DB, cfg cliparse.Config, files *uploads.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the service graph: one store handle shared by everything.
	ops := operators.NewStore(db)
	issuer := session.NewIssuer(ops, cfg.TokenSecret)
	led := ledger.New(db)

	authHandler := handlers.NewAuthHandler(issuer)
	resellerHandler := handlers.NewResellerHandler(led, files)
	checkHandler := handlers.NewCheckHandler(led)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Operator login
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(authHandler.Login))

	// Reseller operations (bearer token required)
	mux.HandleFunc("POST /api/reseller/activate",
		middleware.WithLogging(middleware.RequireAuth(issuer, resellerHandler.Activate)))
	mux.HandleFunc("POST /api/reseller/deactivate",
		middleware.WithLogging(middleware.RequireAuth(issuer, resellerHandler.Deactivate)))
	mux.HandleFunc("POST /api/reseller/uploadM3U",
		middleware.WithLogging(middleware.RequireAuth(issuer, resellerHandler.UploadM3U)))
	mux.HandleFunc("GET /api/reseller/users",
		middleware.WithLogging(middleware.RequireAuth(issuer, resellerHandler.Users)))

	// Device status poll (unauthenticated)
	mux.HandleFunc("GET /api/checkDevice", middleware.WithLogging(checkHandler.CheckDevice))

	// Stored playlists
	mux.Handle("GET /uploads/", files.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mitv-server API v1"))
	})

	return mux
}
