// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/polls/cliparse"
	"github.com/danielhkuo/polls/db"
	"github.com/danielhkuo/polls/models"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "polls_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.Migrate(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:polls_test.db",
		DatabaseType: string(db.SQLite),
		AdminKey:     TestAdminKey,
		LogFormat:    "text",
	}
}

// CreateQuestion inserts a question published the given number of days
// offset from now (negative for the past, positive for not yet published).
func CreateQuestion(t *testing.T, conn *sql.DB, questionText string, days int) models.Question {
	t.Helper()
	return CreateQuestionAt(t, conn, questionText, time.Now().Add(time.Duration(days)*24*time.Hour))
}

// CreateQuestionAt inserts a question with an exact pub_date.
func CreateQuestionAt(t *testing.T, conn *sql.DB, questionText string, pubDate time.Time) models.Question {
	t.Helper()

	pubDate = time.UnixMilli(pubDate.UTC().UnixMilli()).UTC()
	var id int64
	err := conn.QueryRow(`
		INSERT INTO question (question_text, pub_date) VALUES (?, ?) RETURNING id
	`, questionText, pubDate.UnixMilli()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return models.Question{ID: id, QuestionText: questionText, PubDate: pubDate}
}

// AddChoice adds a choice with the given vote count to a question
func AddChoice(t *testing.T, conn *sql.DB, questionID int64, choiceText string, votes int) models.Choice {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO choice (question_id, choice_text, votes) VALUES (?, ?, ?) RETURNING id
	`, questionID, choiceText, votes).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return models.Choice{ID: id, QuestionID: questionID, ChoiceText: choiceText, Votes: votes}
}

// ChoiceVotes reads a choice's current vote count
func ChoiceVotes(t *testing.T, conn *sql.DB, choiceID int64) int {
	t.Helper()

	var votes int
	if err := conn.QueryRow(`SELECT votes FROM choice WHERE id = ?`, choiceID).Scan(&votes); err != nil {
		t.Fatalf("Failed to read votes for choice %d: %v", choiceID, err)
	}
	return votes
}

// CountRows counts rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a urlencoded form POST
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AdminHeaders returns the headers an admin request needs
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertContains checks that the response body contains text
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, text string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), text) {
		t.Errorf("Expected body to contain %q. Body: %s", text, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
