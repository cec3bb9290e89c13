// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func tableExists(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("Failed to look up table %s: %v", name, err)
	}
	return true
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"", SQLite, false},
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"postgres", Postgres, false},
		{"postgresql", Postgres, false},
		{"mysql", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT id FROM question WHERE id = ? AND question_text <> '?' AND pub_date <= ?"

	if got := Rebind(SQLite, query); got != query {
		t.Errorf("sqlite should keep ? placeholders, got %q", got)
	}

	want := "SELECT id FROM question WHERE id = $1 AND question_text <> '?' AND pub_date <= $2"
	if got := Rebind(Postgres, query); got != want {
		t.Errorf("Rebind(postgres) = %q, want %q", got, want)
	}
}

func TestLower(t *testing.T) {
	if got := Postgres.Lower("question_text"); got != "LOWER(question_text)" {
		t.Errorf("Postgres.Lower = %q", got)
	}

	conn := openTestDB(t)
	var folded string
	if err := conn.QueryRow(`SELECT `+SQLite.Lower("?"), "CAFÉ Élan ABC").Scan(&folded); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if folded != "café élan abc" {
		t.Errorf("expected Unicode folding, got %q", folded)
	}

	var null sql.NullString
	if err := conn.QueryRow(`SELECT ` + SQLite.Lower("NULL")).Scan(&null); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if null.Valid {
		t.Errorf("NULL should stay NULL, got %q", null.String)
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("polls.db"); got != "polls.db?"+sqlitePragmas {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("file:polls.db?mode=rwc"); got != "file:polls.db?mode=rwc&"+sqlitePragmas {
		t.Errorf("unexpected dsn %q", got)
	}
	custom := "file:polls.db?_pragma=foreign_keys(1)"
	if got := sqliteDSN(custom); got != custom {
		t.Errorf("explicit pragmas should be kept, got %q", got)
	}
}

func TestOpenRequiresURL(t *testing.T) {
	if _, err := Open(SQLite, "  "); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestMigrateCreatesTablesAndIsIdempotent(t *testing.T) {
	conn := openTestDB(t)

	if err := Migrate(conn, SQLite); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := Migrate(conn, SQLite); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	for _, table := range []string{"question", "choice", migrationTable} {
		if !tableExists(t, conn, table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + migrationTable).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 recorded migration, got %d", count)
	}
}

func TestMigrateCascadesChoiceDeletion(t *testing.T) {
	conn := openTestDB(t)
	if err := Migrate(conn, SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var questionID int64
	err := conn.QueryRow(`INSERT INTO question (question_text, pub_date) VALUES ('q', 0) RETURNING id`).Scan(&questionID)
	if err != nil {
		t.Fatalf("insert question: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO choice (question_id, choice_text) VALUES (?, 'a'), (?, 'b')`, questionID, questionID); err != nil {
		t.Fatalf("insert choices: %v", err)
	}
	if _, err := conn.Exec(`DELETE FROM question WHERE id = ?`, questionID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	var remaining int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM choice`).Scan(&remaining); err != nil {
		t.Fatalf("count choices: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected choices to cascade, %d remain", remaining)
	}
}

func TestApplyMigrationsSkipsEmptyUpSection(t *testing.T) {
	conn := openTestDB(t)

	fsys := fstest.MapFS{
		"0001_empty.sql": {Data: []byte("-- +migrate Up\n-- +migrate Down\nDROP TABLE nothing;")},
		"0002_table.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE extra (id INTEGER);\n-- +migrate Down\nDROP TABLE extra;")},
		"README.md":      {Data: []byte("not sql")},
	}
	if err := ApplyMigrations(conn, SQLite, fsys); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !tableExists(t, conn, "extra") {
		t.Error("expected extra table")
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;"
	got := ExtractUpMigration(content)
	if got != "\nCREATE TABLE a (id INT);\n" {
		t.Errorf("unexpected up section %q", got)
	}
	if got := ExtractUpMigration("CREATE TABLE b (id INT);"); got != "CREATE TABLE b (id INT);" {
		t.Errorf("content without markers should be returned as is, got %q", got)
	}
}
