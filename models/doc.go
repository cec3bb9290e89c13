// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, page context, and admin API types.

# Domain Types

  - Question: a poll prompt with a scheduled publication time (pub_date)
  - Choice: one answer to a Question, carrying a vote counter

A Question is published once its pub_date is at or before the current time.
Future-dated questions are legal; they are scheduled, not yet visible.

# Recency

WasPublishedRecently is true iff pub_date falls in the closed interval
[now-24h, now]:

	q.WasPublishedRecently(time.Now())

It is display-only (the admin list column) and never gates visibility.

# Page Contexts

Each public page renders from a context struct that is also returned as
JSON when the client asks for application/json:

  - IndexContext: latest_question_list
  - DetailContext: question, choices, error_message
  - ResultsContext: question, choices

# Admin Types

  - QuestionInput: question_text, pub_date, inline choices
  - AdminListResponse: rows with was_published_recently
  - AdminQuestionResponse: change view with fieldsets and extra_choice_slots

# Constants

	MaxQuestionTextLen   = 200
	MaxChoiceTextLen     = 200
	LatestQuestionsLimit = 5
	ExtraChoiceSlots     = 3
	RecentWindow         = 24h
*/
package models
