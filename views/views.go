// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

//go:generate templ generate

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// Static holds the stylesheet served under /static/
var Static fs.FS = mustSub(staticFiles, "static")

// NoPollsMessage is shown by the index page when nothing is published
const NoPollsMessage = "No polls are available."

// DetailURL returns the detail page path for a question
func DetailURL(id int64) string {
	return fmt.Sprintf("/polls/%d/", id)
}

// ResultsURL returns the results page path for a question
func ResultsURL(id int64) string {
	return fmt.Sprintf("/polls/%d/results/", id)
}

// VoteURL returns the form target for a question
func VoteURL(id int64) string {
	return fmt.Sprintf("/polls/%d/vote/", id)
}

// choiceID is the radio input id for the i-th listed choice
func choiceID(i int) string {
	return fmt.Sprintf("choice%d", i+1)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
