// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and applies the schema.

# Dialects

Two backends are supported:

  - sqlite (default): modernc.org/sqlite, pure Go, foreign keys enabled
  - postgres: github.com/lib/pq

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)

# Migrations

Migrate applies the embedded SQL files under migrations/<dialect>/ in name
order, recording each in schema_migrations so it runs at most once:

	if err := db.Migrate(conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call on every start.

# Tables

  - question: question_text, pub_date (UTC unix milliseconds)
  - choice: question_id, choice_text, votes

# Relationships

	question 1──* choice

The foreign key uses ON DELETE CASCADE.

# Placeholders

Queries are written with ? placeholders. Rebind converts them to $N for
Postgres:

	conn.QueryRow(db.Rebind(dialect, "SELECT ... WHERE id = ?"), id)

# Case folding

Dialect.Lower wraps an expression in a lowercase function that folds all
of Unicode. On SQLite that is unicode_lower, registered with the driver
when this package loads, since the built-in LOWER only handles ASCII.
*/
package db
