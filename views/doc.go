// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the public poll pages as templ components.

	templ.Handler(views.Index(data)).ServeHTTP(w, r)
	templ.Handler(views.NotFound("Question not found"), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)

Pages:

  - Index: links to each question, or "No polls are available."
  - Detail: radio form posting "choice" to /polls/{id}/vote/
  - Results: "choice -- N vote(s)" plus a "Vote again?" link
  - NotFound: 404 body

Static holds style.css, served at /static/polls/style.css.

The pages are written in the .templ files; the *_templ.go files next to
them are generated with `templ generate` and checked in.
*/
package views
