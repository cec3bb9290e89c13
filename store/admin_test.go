// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/polls/models"
	"github.com/danielhkuo/polls/testutil"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func questionIDs(qs []models.Question) []int64 {
	ids := make([]int64, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDateFilterRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		filter     DateFilter
		start, end time.Time
		ok         bool
	}{
		{Today, day(2025, 3, 15), day(2025, 3, 16), true},
		{Past7Days, day(2025, 3, 8), day(2025, 3, 16), true},
		{ThisMonth, day(2025, 3, 1), day(2025, 4, 1), true},
		{ThisYear, day(2025, 1, 1), day(2026, 1, 1), true},
		{AnyDate, time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			start, end, ok := tt.filter.Range(now)
			if ok != tt.ok || !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Errorf("Range() = %v, %v, %v; want %v, %v, %v", start, end, ok, tt.start, tt.end, tt.ok)
			}
		})
	}
}

func TestParseDateFilterAndOrdering(t *testing.T) {
	if f, err := ParseDateFilter(""); err != nil || f != AnyDate {
		t.Errorf("empty filter: got %q, %v", f, err)
	}
	if f, err := ParseDateFilter("past_7_days"); err != nil || f != Past7Days {
		t.Errorf("past_7_days: got %q, %v", f, err)
	}
	var verr *ValidationError
	if _, err := ParseDateFilter("last_century"); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	if o, err := ParseOrdering(""); err != nil || o != "-pub_date" {
		t.Errorf("default ordering: got %q, %v", o, err)
	}
	if o, err := ParseOrdering("pub_date"); err != nil || o != "pub_date" {
		t.Errorf("ascending ordering: got %q, %v", o, err)
	}
	if _, err := ParseOrdering("question_text"); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestListQuestions(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	now := time.Now().UTC()

	old := testutil.CreateQuestionAt(t, s.db, "What is the oldest colour?", now.AddDate(-2, 0, 0))
	recent := testutil.CreateQuestionAt(t, s.db, "Favourite COLOUR today", now.Add(-time.Minute))
	future := testutil.CreateQuestionAt(t, s.db, "Which 100% sure thing?", now.AddDate(0, 0, 30))

	tests := []struct {
		name   string
		filter ListFilter
		want   []int64
	}{
		{"everything newest first", ListFilter{}, []int64{future.ID, recent.ID, old.ID}},
		{"oldest first", ListFilter{Ordering: "pub_date"}, []int64{old.ID, recent.ID, future.ID}},
		{"case-insensitive search", ListFilter{Search: "colour"}, []int64{recent.ID, old.ID}},
		{"all terms must match", ListFilter{Search: "colour today"}, []int64{recent.ID}},
		{"like wildcards are literal", ListFilter{Search: "100%"}, []int64{future.ID}},
		{"underscore is literal", ListFilter{Search: "_"}, []int64{}},
		{"today", ListFilter{PubDate: Today}, todayIDs(now, recent.ID)},
		{"search and date", ListFilter{Search: "oldest", PubDate: ThisYear}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListQuestions(ctx, tt.filter, now)
			if err != nil {
				t.Fatal(err)
			}
			if ids := questionIDs(got); !sameIDs(ids, tt.want) {
				t.Errorf("got %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestListQuestionsFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	now := time.Now().UTC()

	cafe := testutil.CreateQuestionAt(t, s.db, "Café ÉLAN or Straße?", now.Add(-time.Hour))
	testutil.CreateQuestionAt(t, s.db, "Cafe Elan without accents", now.Add(-time.Hour))

	for _, search := range []string{"é", "É", "élan", "CAFÉ", "straße", "STRAẞE"} {
		t.Run(search, func(t *testing.T) {
			got, err := s.ListQuestions(ctx, ListFilter{Search: search}, now)
			if err != nil {
				t.Fatal(err)
			}
			if ids := questionIDs(got); !sameIDs(ids, []int64{cafe.ID}) {
				t.Errorf("got %v, want [%d]", ids, cafe.ID)
			}
		})
	}
}

// todayIDs guards against a run that straddles UTC midnight.
func todayIDs(now time.Time, id int64) []int64 {
	if now.Add(-time.Minute).Day() != now.Day() {
		return []int64{}
	}
	return []int64{id}
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	pub := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	got, err := s.CreateQuestion(ctx, models.QuestionInput{
		QuestionText: "  What's up?  ",
		PubDate:      ptrTime(pub),
		Choices: []models.ChoiceInput{
			{ChoiceText: "Not much"},
			{ChoiceText: ""},
			{ChoiceText: "The sky"},
			{ChoiceText: "   "},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.Question.ID == 0 || got.Question.QuestionText != "What's up?" {
		t.Errorf("unexpected question %+v", got.Question)
	}
	if !got.Question.PubDate.Equal(pub) {
		t.Errorf("pub_date: got %v, want %v", got.Question.PubDate, pub)
	}
	if len(got.Choices) != 2 || got.Choices[0].ChoiceText != "Not much" || got.Choices[1].ChoiceText != "The sky" {
		t.Errorf("expected the two non-blank choices, got %v", got.Choices)
	}
	for _, c := range got.Choices {
		if c.Votes != 0 || c.QuestionID != got.Question.ID {
			t.Errorf("unexpected choice %+v", c)
		}
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	pub := ptrTime(time.Now())

	tests := []struct {
		name  string
		input models.QuestionInput
		field string
	}{
		{"missing text", models.QuestionInput{PubDate: pub}, "question_text"},
		{"text too long", models.QuestionInput{QuestionText: strings.Repeat("x", 201), PubDate: pub}, "question_text"},
		{"missing pub_date", models.QuestionInput{QuestionText: "q"}, "pub_date"},
		{"choice too long", models.QuestionInput{
			QuestionText: "q",
			PubDate:      pub,
			Choices:      []models.ChoiceInput{{ChoiceText: strings.Repeat("y", 201)}},
		}, "choice_text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateQuestion(ctx, tt.input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}

	if n := testutil.CountRows(t, s.db, "question"); n != 0 {
		t.Errorf("expected no questions stored, got %d", n)
	}

	// 200 multi-byte characters is within the limit
	if _, err := s.CreateQuestion(ctx, models.QuestionInput{QuestionText: strings.Repeat("é", 200), PubDate: pub}); err != nil {
		t.Errorf("200 runes should be accepted: %v", err)
	}
}

func TestUpdateQuestionKeepsVotes(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	q := testutil.CreateQuestion(t, s.db, "Old text", -1)
	c := testutil.AddChoice(t, s.db, q.ID, "Kept", 5)
	newDate := time.Now().AddDate(0, 0, 3).UTC().Truncate(time.Millisecond)

	got, err := s.UpdateQuestion(ctx, q.ID, models.QuestionInput{
		QuestionText: "New text",
		PubDate:      ptrTime(newDate),
		Choices:      []models.ChoiceInput{{ChoiceText: "Added"}, {}, {}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Question.QuestionText != "New text" || !got.Question.PubDate.Equal(newDate) {
		t.Errorf("unexpected question %+v", got.Question)
	}
	if len(got.Choices) != 2 || got.Choices[0].ID != c.ID || got.Choices[0].Votes != 5 || got.Choices[1].ChoiceText != "Added" {
		t.Errorf("unexpected choices %v", got.Choices)
	}

	if _, err := s.UpdateQuestion(ctx, 9999, models.QuestionInput{QuestionText: "x", PubDate: ptrTime(newDate)}); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestGetQuestionIgnoresPublication(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	future := testutil.CreateQuestion(t, s.db, "Scheduled", 10)
	got, err := s.GetQuestion(ctx, future.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != future.ID {
		t.Errorf("expected %d, got %d", future.ID, got.ID)
	}
	if _, err := s.GetQuestion(ctx, 9999); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestDeleteQuestionCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	q := testutil.CreateQuestion(t, s.db, "Doomed", -1)
	testutil.AddChoice(t, s.db, q.ID, "a", 1)
	testutil.AddChoice(t, s.db, q.ID, "b", 2)
	keep := testutil.CreateQuestion(t, s.db, "Survivor", -1)
	testutil.AddChoice(t, s.db, keep.ID, "c", 0)

	if err := s.DeleteQuestion(ctx, q.ID); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CountRows(t, s.db, "choice"); n != 1 {
		t.Errorf("expected 1 remaining choice, got %d", n)
	}
	if err := s.DeleteQuestion(ctx, q.ID); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("second delete: expected ErrQuestionNotFound, got %v", err)
	}
}

func TestAddAndDeleteChoice(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	q := testutil.CreateQuestion(t, s.db, "Pick", 2)
	c, err := s.AddChoice(ctx, q.ID, " Option ")
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == 0 || c.QuestionID != q.ID || c.ChoiceText != "Option" || c.Votes != 0 {
		t.Errorf("unexpected choice %+v", c)
	}

	if _, err := s.AddChoice(ctx, 9999, "Orphan"); !errors.Is(err, ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
	var verr *ValidationError
	if _, err := s.AddChoice(ctx, q.ID, ""); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	if err := s.DeleteChoice(ctx, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteChoice(ctx, c.ID); !errors.Is(err, ErrChoiceNotFound) {
		t.Errorf("expected ErrChoiceNotFound, got %v", err)
	}
}
