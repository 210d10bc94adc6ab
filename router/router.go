// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/form-results/cliparse"
	"github.com/danielhkuo/form-results/handlers"
	"github.com/danielhkuo/form-results/middleware"
	"github.com/danielhkuo/form-results/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// Initialize handlers
	resultsHandler, err := handlers.NewResultsHandler(store.New(db), cfg)
	if err != nil {
		return nil, err
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Results page for the configured survey (form post or query string)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.ManageResults))
	mux.HandleFunc("POST /results", middleware.WithLogging(resultsHandler.ManageResults))

	// Results page for any survey
	mux.HandleFunc("GET /surveys/{id}/results", middleware.WithLogging(resultsHandler.ManageSurveyResults))
	mux.HandleFunc("POST /surveys/{id}/results", middleware.WithLogging(resultsHandler.ManageSurveyResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("form-results API v1"))
	})

	return mux, nil
}
