// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/handlers"
	"github.com/danielhkuo/polls/metrics"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/store"
	"github.com/danielhkuo/polls/views"
)

func NewRouter(s *store.Store, cfg cliparse.Config, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s, m)
	adminHandler := handlers.NewAdminHandler(s)

	// Every route is logged, traced and timed under its pattern
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(
			middleware.WithTracing(pattern, middleware.WithMetrics(m, pattern, h)),
		))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		handle(pattern, middleware.RequireAdminKey(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", m.Handler())

	// Public pages
	handle("GET /polls/{$}", pollHandler.Index)
	handle("GET /polls/{id}/{$}", pollHandler.Detail)
	handle("GET /polls/{id}/results/{$}", pollHandler.Results)
	handle("POST /polls/{id}/vote/{$}", pollHandler.Vote)

	// Admin (requires X-Admin-Key)
	admin("GET /admin/questions", adminHandler.ListQuestions)
	admin("POST /admin/questions", adminHandler.CreateQuestion)
	admin("GET /admin/questions/{id}", adminHandler.GetQuestion)
	admin("PUT /admin/questions/{id}", adminHandler.UpdateQuestion)
	admin("DELETE /admin/questions/{id}", adminHandler.DeleteQuestion)
	admin("POST /admin/questions/{id}/choices", adminHandler.AddChoice)
	admin("DELETE /admin/choices/{id}", adminHandler.DeleteChoice)

	// Stylesheet
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(views.Static)))

	// Root endpoint
	toIndex := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusFound)
	}
	mux.HandleFunc("GET /{$}", toIndex)
	mux.HandleFunc("GET /polls", toIndex)

	return mux
}
