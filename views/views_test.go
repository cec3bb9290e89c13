// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/danielhkuo/polls/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return b.String()
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("Expected output to contain %q\n%s", want, body)
		}
	}
}

func TestIndex(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		body := render(t, Index(models.IndexContext{}))
		assertContains(t, body, "No polls are available.", `href="/static/polls/style.css"`)
		if strings.Contains(body, "<ul>") {
			t.Error("Empty index should not render a list")
		}
	})

	t.Run("lists questions in order", func(t *testing.T) {
		body := render(t, Index(models.IndexContext{LatestQuestionList: []models.Question{
			{ID: 2, QuestionText: "Past question 2."},
			{ID: 1, QuestionText: "Past question 1."},
		}}))
		assertContains(t, body,
			`<a href="/polls/2/">Past question 2.</a>`,
			`<a href="/polls/1/">Past question 1.</a>`,
		)
		if strings.Index(body, "Past question 2.") > strings.Index(body, "Past question 1.") {
			t.Error("Questions should keep the given order")
		}
		if strings.Contains(body, NoPollsMessage) {
			t.Error("Non-empty index should not show the empty message")
		}
	})
}

func TestDetail(t *testing.T) {
	data := models.DetailContext{
		Question: models.Question{ID: 4, QuestionText: "What's up?"},
		Choices: []models.Choice{
			{ID: 10, QuestionID: 4, ChoiceText: "Not much"},
			{ID: 11, QuestionID: 4, ChoiceText: "The sky"},
		},
	}

	body := render(t, Detail(data))
	assertContains(t, body,
		"<h1>What&#39;s up?</h1>",
		`action="/polls/4/vote/" method="post"`,
		`name="choice" id="choice1" value="10"`,
		`name="choice" id="choice2" value="11"`,
		`<label for="choice2">The sky</label>`,
		`type="submit" value="Vote"`,
	)
	if strings.Contains(body, "<strong>") {
		t.Error("No error line expected without a message")
	}

	data.ErrorMessage = "You didn't select a choice."
	assertContains(t, render(t, Detail(data)), "<p><strong>You didn&#39;t select a choice.</strong></p>")
}

func TestResults(t *testing.T) {
	body := render(t, Results(models.ResultsContext{
		Question: models.Question{ID: 3, QuestionText: "Tabs or spaces?"},
		Choices: []models.Choice{
			{ID: 1, ChoiceText: "Tabs", Votes: 1},
			{ID: 2, ChoiceText: "Spaces", Votes: 0},
			{ID: 3, ChoiceText: "Both", Votes: 7},
		},
	}))
	assertContains(t, body,
		"<li>Tabs -- 1 vote</li>",
		"<li>Spaces -- 0 votes</li>",
		"<li>Both -- 7 votes</li>",
		`<a href="/polls/3/">Vote again?</a>`,
	)
}

func TestTextIsEscaped(t *testing.T) {
	body := render(t, Index(models.IndexContext{LatestQuestionList: []models.Question{
		{ID: 1, QuestionText: "<script>alert(1)</script> & co"},
	}}))
	if strings.Contains(body, "<script>") {
		t.Fatal("Question text must be escaped")
	}
	assertContains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; co")

	title := render(t, Detail(models.DetailContext{Question: models.Question{ID: 1, QuestionText: `"quoted" <b>`}}))
	assertContains(t, title, "<title>&#34;quoted&#34; &lt;b&gt;</title>")

	mixed := `<script>"x" & 'y'</script>`
	for name, c := range map[string]templ.Component{
		"detail":    Detail(models.DetailContext{Question: models.Question{ID: 1}, Choices: []models.Choice{{ID: 1, ChoiceText: mixed}}}),
		"results":   Results(models.ResultsContext{Question: models.Question{ID: 1, QuestionText: mixed}}),
		"not found": NotFound(mixed),
	} {
		body := render(t, c)
		if strings.Contains(body, mixed) || strings.Contains(body, "'y'") {
			t.Errorf("%s: raw text leaked into the page\n%s", name, body)
		}
		assertContains(t, body, "&lt;script&gt;&#34;x&#34; &amp; &#39;y&#39;&lt;/script&gt;")
	}
}

func TestLayout(t *testing.T) {
	body := render(t, NotFound("gone"))
	if !strings.HasPrefix(body, "<!doctype html><html lang=\"en\">") {
		t.Errorf("Unexpected document start\n%s", body)
	}
	assertContains(t, body,
		"<title>Page not found</title>",
		"<body><h1>Not Found</h1><p>gone</p></body></html>",
	)
}

func TestNotFound(t *testing.T) {
	assertContains(t, render(t, NotFound("Question not found")), "<h1>Not Found</h1>", "Question not found")
}

func TestStaticStylesheet(t *testing.T) {
	data, err := fs.ReadFile(Static, "polls/style.css")
	if err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
	if !strings.Contains(string(data), "body") {
		t.Error("Unexpected stylesheet contents")
	}
}
