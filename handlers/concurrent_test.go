// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/polls/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes for the same choice
// are all counted
func TestConcurrentVotes(t *testing.T) {
	h, conn := newPollHandler(t)
	q := testutil.CreateQuestion(t, conn, "Busy question.", -1)
	a := testutil.AddChoice(t, conn, q.ID, "A", 0)
	b := testutil.AddChoice(t, conn, q.ID, "B", 0)

	numVoters := 20
	var redirects atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			choice := a.ID
			if voterIdx%4 == 0 {
				choice = b.ID
			}
			w := postVote(h, idStr(q.ID), url.Values{"choice": {idStr(choice)}})
			if w.Code == http.StatusFound {
				redirects.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(redirects.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, redirects.Load())
	}
	if got := testutil.ChoiceVotes(t, conn, a.ID); got != 15 {
		t.Errorf("Expected 15 votes for A, got %d", got)
	}
	if got := testutil.ChoiceVotes(t, conn, b.ID); got != 5 {
		t.Errorf("Expected 5 votes for B, got %d", got)
	}
}

// TestConcurrentVotesAcrossQuestions verifies that votes on different
// questions do not interfere
func TestConcurrentVotesAcrossQuestions(t *testing.T) {
	h, conn := newPollHandler(t)

	numQuestions := 5
	votesEach := 4
	choiceIDs := make([]int64, numQuestions)
	questionIDs := make([]int64, numQuestions)
	for i := 0; i < numQuestions; i++ {
		q := testutil.CreateQuestion(t, conn, "Parallel question", -1)
		questionIDs[i] = q.ID
		choiceIDs[i] = testutil.AddChoice(t, conn, q.ID, "Only", 0).ID
	}

	var wg sync.WaitGroup
	for i := 0; i < numQuestions; i++ {
		for j := 0; j < votesEach; j++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				postVote(h, idStr(questionIDs[idx]), url.Values{"choice": {idStr(choiceIDs[idx])}})
			}(i)
		}
	}
	wg.Wait()

	for i, choiceID := range choiceIDs {
		if got := testutil.ChoiceVotes(t, conn, choiceID); got != votesEach {
			t.Errorf("Question %d: expected %d votes, got %d", questionIDs[i], votesEach, got)
		}
	}
}
