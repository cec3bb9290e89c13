// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/polls/models"
)

// NoChoiceMessage is shown when a vote names no choice of the question.
const NoChoiceMessage = "You didn't select a choice."

type VoteOutcome int

const (
	// VoteRecorded means one choice gained exactly one vote.
	VoteRecorded VoteOutcome = iota + 1
	// VoteNoChoice means nothing changed and the form should be redisplayed.
	VoteNoChoice
)

func (o VoteOutcome) String() string {
	switch o {
	case VoteRecorded:
		return "recorded"
	case VoteNoChoice:
		return "no_choice"
	}
	return "unknown"
}

// VoteResult is the outcome of a vote submission.
// Choice is set only when Outcome is VoteRecorded; Message only for VoteNoChoice.
type VoteResult struct {
	Outcome  VoteOutcome
	Question models.Question
	Choice   models.Choice
	Message  string
}

// Vote adds one vote to the choice named by choiceValue (the raw form value).
//
// It returns ErrQuestionNotFound when the question is absent or not yet
// published. A missing, malformed, or foreign choice yields VoteNoChoice
// without touching any row.
func (s *Store) Vote(ctx context.Context, questionID int64, choiceValue string, now time.Time) (VoteResult, error) {
	question, err := s.PublishedQuestion(ctx, questionID, now)
	if err != nil {
		return VoteResult{}, err
	}

	noChoice := VoteResult{Outcome: VoteNoChoice, Question: question, Message: NoChoiceMessage}

	choiceID, err := strconv.ParseInt(strings.TrimSpace(choiceValue), 10, 64)
	if err != nil {
		return noChoice, nil
	}

	// Single statement so concurrent votes never lose an increment
	choice, err := scanChoice(s.db.QueryRowContext(ctx, s.q(`
		UPDATE choice
		SET votes = votes + 1
		WHERE id = ? AND question_id = ?
		RETURNING `+choiceColumns), choiceID, question.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return noChoice, nil
	}
	if err != nil {
		return VoteResult{}, fmt.Errorf("increment choice %d: %w", choiceID, err)
	}

	return VoteResult{Outcome: VoteRecorded, Question: question, Choice: choice}, nil
}
