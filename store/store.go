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
	"unicode/utf8"

	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice not found")
)

// ValidationError reports admin input that cannot be stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Store runs poll queries against a SQLite or Postgres database.
type Store struct {
	db      *sql.DB
	dialect db.Dialect
}

func New(conn *sql.DB, dialect db.Dialect) *Store {
	return &Store{db: conn, dialect: dialect}
}

func (s *Store) q(query string) string {
	return db.Rebind(s.dialect, query)
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

const questionColumns = `id, question_text, pub_date`

const choiceColumns = `id, question_id, choice_text, votes`

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (models.Question, error) {
	var q models.Question
	var pubDate int64
	if err := row.Scan(&q.ID, &q.QuestionText, &pubDate); err != nil {
		return models.Question{}, err
	}
	q.PubDate = fromMillis(pubDate)
	return q, nil
}

func scanChoice(row scanner) (models.Choice, error) {
	var c models.Choice
	if err := row.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
		return models.Choice{}, err
	}
	return c, nil
}

func (s *Store) queryQuestions(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// LatestPublished returns up to limit questions with pub_date <= now,
// newest first.
func (s *Store) LatestPublished(ctx context.Context, now time.Time, limit int) ([]models.Question, error) {
	if limit <= 0 {
		return []models.Question{}, nil
	}
	return s.queryQuestions(ctx, `
		SELECT `+questionColumns+`
		FROM question
		WHERE pub_date <= ?
		ORDER BY pub_date DESC, id DESC
		LIMIT ?
	`, toMillis(now), limit)
}

// PublishedQuestion looks up a question visible at now.
// Absent and future-dated questions both return ErrQuestionNotFound.
func (s *Store) PublishedQuestion(ctx context.Context, id int64, now time.Time) (models.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, s.q(`
		SELECT `+questionColumns+`
		FROM question
		WHERE id = ? AND pub_date <= ?
	`), id, toMillis(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, ErrQuestionNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("query question %d: %w", id, err)
	}
	return q, nil
}

// Choices returns the question's choices in creation order.
func (s *Store) Choices(ctx context.Context, questionID int64) ([]models.Choice, error) {
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT `+choiceColumns+`
		FROM choice
		WHERE question_id = ?
		ORDER BY id
	`), questionID)
	if err != nil {
		return nil, fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		c, err := scanChoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate choices: %w", err)
	}
	return choices, nil
}

func validateText(field, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", maxLen)}
	}
	return value, nil
}
