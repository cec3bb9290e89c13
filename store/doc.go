// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds every query the site runs.

	s := store.New(conn, db.SQLite)
	questions, err := s.LatestPublished(ctx, time.Now(), models.LatestQuestionsLimit)

Public reads only see questions whose pub_date is not after now.
PublishedQuestion returns ErrQuestionNotFound for absent and future
questions alike.

Vote adds exactly one vote in a single UPDATE, so concurrent votes are all
counted. A missing, malformed or foreign choice is reported as
VoteNoChoice and leaves every row untouched.

Admin methods (ListQuestions, CreateQuestion, UpdateQuestion, ...) ignore
pub_date and return *ValidationError for input they refuse.

Queries are written with ? placeholders and rebound for Postgres.
*/
package store
