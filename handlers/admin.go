// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/polls/middleware"
	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/store"
)

// AdminHandler serves the question admin. Routes are expected to sit behind
// middleware.RequireAdminKey.
type AdminHandler struct {
	store *store.Store
	now   func() time.Time
}

func NewAdminHandler(s *store.Store) *AdminHandler {
	return &AdminHandler{store: s, now: time.Now}
}

// ListQuestions handles GET /admin/questions
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateFilter, err := store.ParseDateFilter(query.Get("pub_date"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	ordering, err := store.ParseOrdering(query.Get("o"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	now := h.now()
	questions, err := h.store.ListQuestions(r.Context(), store.ListFilter{
		Search:   query.Get("q"),
		PubDate:  dateFilter,
		Ordering: ordering,
	}, now)
	if err != nil {
		h.writeError(w, err)
		return
	}

	rows := make([]models.AdminQuestionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, models.AdminQuestionRow{
			Question:             q,
			WasPublishedRecently: q.WasPublishedRecently(now),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminListResponse{
		Results:     rows,
		Count:       len(rows),
		ListDisplay: models.AdminListDisplay,
	})
}

// CreateQuestion handles POST /admin/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var input models.QuestionInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	created, err := h.store.CreateQuestion(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	slog.Info("question created", "question_id", created.Question.ID, "choices", len(created.Choices))
	middleware.JSONResponse(w, http.StatusCreated, h.changeView(created))
}

// GetQuestion handles GET /admin/questions/{id}
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Question not found")
	if !ok {
		return
	}

	question, err := h.store.GetQuestion(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	choices, err := h.store.Choices(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.changeView(models.QuestionWithChoices{
		Question: question,
		Choices:  choices,
	}))
}

// UpdateQuestion handles PUT /admin/questions/{id}
func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Question not found")
	if !ok {
		return
	}

	var input models.QuestionInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.store.UpdateQuestion(r.Context(), id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	slog.Info("question updated", "question_id", id)
	middleware.JSONResponse(w, http.StatusOK, h.changeView(updated))
}

// DeleteQuestion handles DELETE /admin/questions/{id}
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Question not found")
	if !ok {
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	slog.Info("question deleted", "question_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// AddChoice handles POST /admin/questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Question not found")
	if !ok {
		return
	}

	var input models.ChoiceInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	choice, err := h.store.AddChoice(r.Context(), id, input.ChoiceText)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, choice)
}

// DeleteChoice handles DELETE /admin/choices/{id}
func (h *AdminHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Choice not found")
	if !ok {
		return
	}

	if err := h.store.DeleteChoice(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) changeView(qc models.QuestionWithChoices) models.AdminQuestionResponse {
	return models.AdminQuestionResponse{
		Question:             qc.Question,
		Choices:              qc.Choices,
		WasPublishedRecently: qc.Question.WasPublishedRecently(h.now()),
		ExtraChoiceSlots:     models.ExtraChoiceSlots,
		Fieldsets:            models.AdminFieldsets,
	}
}

// writeError maps store errors onto admin JSON responses
func (h *AdminHandler) writeError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrQuestionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
	case errors.Is(err, store.ErrChoiceNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
	default:
		slog.Error("admin database error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, notFoundMessage string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMessage)
		return 0, false
	}
	return id, true
}
