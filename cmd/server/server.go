// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtline/courtline/internal/api"
	"github.com/courtline/courtline/internal/api/reservations"
	"github.com/courtline/courtline/internal/config"
	"github.com/courtline/courtline/internal/db"
)

func newServer(cfg *config.Config, store *db.DB) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router, store)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, store *db.DB) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("/api/reservations", reservations.New(store))
}
