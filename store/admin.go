// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/polls/models"
)

// DateFilter selects questions by pub_date relative to the current day (UTC).
type DateFilter string

const (
	AnyDate   DateFilter = "any"
	Today     DateFilter = "today"
	Past7Days DateFilter = "past_7_days"
	ThisMonth DateFilter = "this_month"
	ThisYear  DateFilter = "this_year"
)

const (
	orderNewest = "-pub_date"
	orderOldest = "pub_date"
)

// ParseDateFilter accepts the admin list's pub_date query values.
func ParseDateFilter(s string) (DateFilter, error) {
	switch f := DateFilter(strings.TrimSpace(s)); f {
	case "":
		return AnyDate, nil
	case AnyDate, Today, Past7Days, ThisMonth, ThisYear:
		return f, nil
	}
	return "", &ValidationError{Field: "pub_date", Message: fmt.Sprintf("unknown filter %q", s)}
}

// Range returns the half-open [start, end) window for the filter.
// ok is false for AnyDate.
func (f DateFilter) Range(now time.Time) (start, end time.Time, ok bool) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	switch f {
	case Today:
		return today, tomorrow, true
	case Past7Days:
		return today.AddDate(0, 0, -7), tomorrow, true
	case ThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, 0), true
	case ThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

// ListFilter holds the admin list's search, date filter and ordering.
type ListFilter struct {
	Search   string
	PubDate  DateFilter
	Ordering string
}

// ParseOrdering accepts "pub_date" or "-pub_date".
func ParseOrdering(s string) (string, error) {
	switch s = strings.TrimSpace(s); s {
	case "":
		return orderNewest, nil
	case orderNewest, orderOldest:
		return s, nil
	}
	return "", &ValidationError{Field: "o", Message: fmt.Sprintf("cannot order by %q", s)}
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// ListQuestions returns every question matching the filter, published or not.
// Each whitespace-separated search term must appear in question_text.
func (s *Store) ListQuestions(ctx context.Context, filter ListFilter, now time.Time) ([]models.Question, error) {
	var where []string
	var args []any

	for _, term := range strings.Fields(filter.Search) {
		where = append(where, s.dialect.Lower("question_text")+` LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
	}

	if start, end, ok := filter.PubDate.Range(now); ok {
		where = append(where, `pub_date >= ? AND pub_date < ?`)
		args = append(args, toMillis(start), toMillis(end))
	}

	query := `SELECT ` + questionColumns + ` FROM question`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	if filter.Ordering == orderOldest {
		query += ` ORDER BY pub_date ASC, id ASC`
	} else {
		query += ` ORDER BY pub_date DESC, id DESC`
	}

	return s.queryQuestions(ctx, query, args...)
}

// GetQuestion looks up a question regardless of pub_date.
func (s *Store) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, s.q(`
		SELECT `+questionColumns+` FROM question WHERE id = ?
	`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("query question %d: %w", id, err)
	}
	return q, nil
}

func validateQuestionInput(input models.QuestionInput) (string, time.Time, []string, error) {
	text, err := validateText("question_text", input.QuestionText, models.MaxQuestionTextLen)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if input.PubDate == nil || input.PubDate.IsZero() {
		return "", time.Time{}, nil, &ValidationError{Field: "pub_date", Message: "is required"}
	}

	// Blank rows are the unused extra slots of the inline form
	var choices []string
	for _, c := range input.Choices {
		if strings.TrimSpace(c.ChoiceText) == "" {
			continue
		}
		choiceText, err := validateText("choice_text", c.ChoiceText, models.MaxChoiceTextLen)
		if err != nil {
			return "", time.Time{}, nil, err
		}
		choices = append(choices, choiceText)
	}

	return text, input.PubDate.UTC(), choices, nil
}

func (s *Store) insertChoices(ctx context.Context, tx *sql.Tx, questionID int64, texts []string) error {
	for _, text := range texts {
		if _, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO choice (question_id, choice_text, votes) VALUES (?, ?, 0)
		`), questionID, text); err != nil {
			return fmt.Errorf("insert choice: %w", err)
		}
	}
	return nil
}

func (s *Store) withChoices(ctx context.Context, q models.Question) (models.QuestionWithChoices, error) {
	choices, err := s.Choices(ctx, q.ID)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}
	return models.QuestionWithChoices{Question: q, Choices: choices}, nil
}

// CreateQuestion stores a question together with its non-blank inline choices.
func (s *Store) CreateQuestion(ctx context.Context, input models.QuestionInput) (models.QuestionWithChoices, error) {
	text, pubDate, choices, err := validateQuestionInput(input)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO question (question_text, pub_date) VALUES (?, ?) RETURNING id
	`), text, toMillis(pubDate)).Scan(&id)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("insert question: %w", err)
	}

	if err := s.insertChoices(ctx, tx, id, choices); err != nil {
		return models.QuestionWithChoices{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("commit question: %w", err)
	}

	return s.withChoices(ctx, models.Question{ID: id, QuestionText: text, PubDate: fromMillis(toMillis(pubDate))})
}

// UpdateQuestion replaces question_text and pub_date and appends any
// non-blank inline choices. Existing choices and their votes are kept.
func (s *Store) UpdateQuestion(ctx context.Context, id int64, input models.QuestionInput) (models.QuestionWithChoices, error) {
	text, pubDate, choices, err := validateQuestionInput(input)
	if err != nil {
		return models.QuestionWithChoices{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE question SET question_text = ?, pub_date = ? WHERE id = ?
	`), text, toMillis(pubDate), id)
	if err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("update question %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("update question %d: %w", id, err)
	} else if n == 0 {
		return models.QuestionWithChoices{}, ErrQuestionNotFound
	}

	if err := s.insertChoices(ctx, tx, id, choices); err != nil {
		return models.QuestionWithChoices{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.QuestionWithChoices{}, fmt.Errorf("commit question: %w", err)
	}

	return s.withChoices(ctx, models.Question{ID: id, QuestionText: text, PubDate: fromMillis(toMillis(pubDate))})
}

// DeleteQuestion removes a question; its choices go with it.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM question WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// AddChoice appends one choice with zero votes.
func (s *Store) AddChoice(ctx context.Context, questionID int64, choiceText string) (models.Choice, error) {
	text, err := validateText("choice_text", choiceText, models.MaxChoiceTextLen)
	if err != nil {
		return models.Choice{}, err
	}
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return models.Choice{}, err
	}

	c, err := scanChoice(s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO choice (question_id, choice_text, votes) VALUES (?, ?, 0)
		RETURNING `+choiceColumns), questionID, text))
	if err != nil {
		return models.Choice{}, fmt.Errorf("insert choice: %w", err)
	}
	return c, nil
}

// DeleteChoice removes one choice.
func (s *Store) DeleteChoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM choice WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete choice %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete choice %d: %w", id, err)
	}
	if n == 0 {
		return ErrChoiceNotFound
	}
	return nil
}
