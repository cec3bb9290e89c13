// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Field limits
const (
	MaxQuestionTextLen = 200
	MaxChoiceTextLen   = 200
)

// LatestQuestionsLimit is how many questions the index page lists.
const LatestQuestionsLimit = 5

// ExtraChoiceSlots is the number of blank choice rows offered by the admin form.
const ExtraChoiceSlots = 3

// RecentWindow bounds WasPublishedRecently.
const RecentWindow = 24 * time.Hour

// Domain types

type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
}

func (q Question) String() string {
	return q.QuestionText
}

// IsPublished reports whether the question is visible at now.
// A pub_date equal to now counts as published.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently reports whether pub_date falls in [now-24h, now].
// Future-dated questions are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-RecentWindow)) && !q.PubDate.After(now)
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

func (c Choice) String() string {
	return c.ChoiceText
}

type QuestionWithChoices struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}

// Page context types, also served as JSON

type IndexContext struct {
	LatestQuestionList []Question `json:"latest_question_list"`
}

type DetailContext struct {
	Question     Question `json:"question"`
	Choices      []Choice `json:"choices"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

type ResultsContext struct {
	Question Question `json:"question"`
	Choices  []Choice `json:"choices"`
}

// Admin request types

type ChoiceInput struct {
	ChoiceText string `json:"choice_text"`
}

type QuestionInput struct {
	QuestionText string        `json:"question_text"`
	PubDate      *time.Time    `json:"pub_date"`
	Choices      []ChoiceInput `json:"choices"`
}

// Admin response types

type AdminQuestionRow struct {
	Question
	WasPublishedRecently bool `json:"was_published_recently"`
}

type AdminListResponse struct {
	Results     []AdminQuestionRow `json:"results"`
	Count       int                `json:"count"`
	ListDisplay []string           `json:"list_display"`
}

type Fieldset struct {
	Title  string   `json:"title,omitempty"`
	Fields []string `json:"fields"`
}

type AdminQuestionResponse struct {
	Question             Question   `json:"question"`
	Choices              []Choice   `json:"choices"`
	WasPublishedRecently bool       `json:"was_published_recently"`
	ExtraChoiceSlots     int        `json:"extra_choice_slots"`
	Fieldsets            []Fieldset `json:"fieldsets"`
}

// AdminFieldsets orders the question change form: text first, then the date.
var AdminFieldsets = []Fieldset{
	{Fields: []string{"question_text"}},
	{Title: "Date information", Fields: []string{"pub_date"}},
}

// AdminListDisplay names the columns of the admin question list.
var AdminListDisplay = []string{"question_text", "pub_date", "was_published_recently"}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
