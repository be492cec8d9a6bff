package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/mitv-server/cliparse"
	"github.com/danielhkuo/mitv-server/middleware"
	"github.com/danielhkuo/mitv-server/operators"
	"github.com/danielhkuo/mitv-server/router"
	"github.com/danielhkuo/mitv-server/store"
	"github.com/danielhkuo/mitv-server/uploads"
)

func main() {
	// .env is optional; deployments normally use real environment variables
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	if cfg.TokenSecret == cliparse.DefaultTokenSecret {
		slog.Warn("APP_SECRET not set, using the default token secret")
	}

	// Connect to the activation store; a broken store means no service
	db, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("store connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create schema (tables)
	ctx := context.Background()
	if err := db.CreateSchema(ctx); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Store schema ready", "backend", db.Backend())

	// Seed the default operator on first boot
	if err := operators.NewStore(db).EnsureDefault(ctx); err != nil {
		slog.Error("default operator seeding failed", "error", err)
		os.Exit(1)
	}

	// Prepare the playlist blob store
	files, err := uploads.New(cfg.UploadDir)
	if err != nil {
		slog.Error("upload dir init failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(db, cfg, files)

	// Create server; the admin panel is served from another origin
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
