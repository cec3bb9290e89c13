// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/danielhkuo/polls/metrics"
	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
	"github.com/danielhkuo/polls/views"
)

type PollHandler struct {
	store   *store.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPollHandler(s *store.Store, m *metrics.Metrics) *PollHandler {
	return &PollHandler{store: s, metrics: m, now: time.Now}
}

// Index handles GET /polls/
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	questions, err := h.store.LatestPublished(r.Context(), h.now(), models.LatestQuestionsLimit)
	if err != nil {
		slog.Error("failed to query latest questions", "error", err)
		serverError(w, r)
		return
	}

	data := models.IndexContext{LatestQuestionList: questions}
	render(w, r, http.StatusOK, views.Index(data), data)
}

// Detail handles GET /polls/{id}/
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadPublished(w, r)
	if !ok {
		return
	}

	data := models.DetailContext{Question: question, Choices: choices}
	render(w, r, http.StatusOK, views.Detail(data), data)
}

// Results handles GET /polls/{id}/results/
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	question, choices, ok := h.loadPublished(w, r)
	if !ok {
		return
	}

	data := models.ResultsContext{Question: question, Choices: choices}
	render(w, r, http.StatusOK, views.Results(data), data)
}

// Vote handles POST /polls/{id}/vote/
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	questionID, ok := questionIDFromPath(r)
	if !ok {
		notFound(w, r, "Question not found")
		return
	}

	result, err := h.store.Vote(r.Context(), questionID, r.PostFormValue("choice"), h.now())
	if errors.Is(err, store.ErrQuestionNotFound) {
		notFound(w, r, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "question_id", questionID)
		serverError(w, r)
		return
	}

	label := strconv.FormatInt(questionID, 10)

	if result.Outcome == store.VoteNoChoice {
		h.metrics.VotesRejected.WithLabelValues(label).Inc()

		choices, err := h.store.Choices(r.Context(), questionID)
		if err != nil {
			slog.Error("failed to query choices", "error", err, "question_id", questionID)
			serverError(w, r)
			return
		}

		data := models.DetailContext{
			Question:     result.Question,
			Choices:      choices,
			ErrorMessage: result.Message,
		}
		render(w, r, http.StatusOK, views.Detail(data), data)
		return
	}

	h.metrics.VotesRecorded.WithLabelValues(label).Inc()
	slog.Info("vote recorded", "question_id", questionID, "choice_id", result.Choice.ID)

	// Post/redirect/get
	http.Redirect(w, r, views.ResultsURL(questionID), http.StatusFound)
}

// loadPublished resolves the {id} path value to a published question and
// its choices, writing the 404 or 500 response itself when it cannot.
func (h *PollHandler) loadPublished(w http.ResponseWriter, r *http.Request) (models.Question, []models.Choice, bool) {
	questionID, ok := questionIDFromPath(r)
	if !ok {
		notFound(w, r, "Question not found")
		return models.Question{}, nil, false
	}

	question, err := h.store.PublishedQuestion(r.Context(), questionID, h.now())
	if errors.Is(err, store.ErrQuestionNotFound) {
		notFound(w, r, "Question not found")
		return models.Question{}, nil, false
	}
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", questionID)
		serverError(w, r)
		return models.Question{}, nil, false
	}

	choices, err := h.store.Choices(r.Context(), questionID)
	if err != nil {
		slog.Error("failed to query choices", "error", err, "question_id", questionID)
		serverError(w, r)
		return models.Question{}, nil, false
	}

	return question, choices, true
}

func questionIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// render writes the page, or its context as JSON when the client asks for it
func render(w http.ResponseWriter, r *http.Request, status int, page templ.Component, data any) {
	if wantsJSON(r) {
		middleware.JSONResponse(w, status, data)
		return
	}
	templ.Handler(page, templ.WithStatus(status)).ServeHTTP(w, r)
}

func notFound(w http.ResponseWriter, r *http.Request, message string) {
	if wantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusNotFound, message)
		return
	}
	templ.Handler(views.NotFound(message), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

func serverError(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	http.Error(w, "Database error", http.StatusInternalServerError)
}
