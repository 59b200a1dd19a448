package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/grouptab/grouptab/internal/config"
	"github.com/grouptab/grouptab/internal/server"
	"github.com/grouptab/grouptab/internal/storage/sqlite"
	"github.com/grouptab/grouptab/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	srv := server.New(store)

	slog.Info("Server starting", "address", cfg.BindAddr)
	if err := http.ListenAndServe(cfg.BindAddr, srv.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
