// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls site.

# Handler Types

Each handler is a struct around a *store.Store:

  - PollHandler: public pages and voting
  - AdminHandler: question and choice management (JSON)

	pollHandler := handlers.NewPollHandler(s, m)
	adminHandler := handlers.NewAdminHandler(s)

# Public Pages

	GET  /polls/                → Index (latest 5 published questions)
	GET  /polls/{id}/           → Detail (voting form)
	GET  /polls/{id}/results/   → Results (votes per choice)
	POST /polls/{id}/vote/      → Vote (form field "choice")

Questions whose pub_date is in the future answer 404 exactly like
missing ones. A successful vote redirects (302) to the results page. A
missing or foreign choice re-renders the detail page with
"You didn't select a choice." and changes nothing.

Pages answer with their context as JSON when the request sends
Accept: application/json.

# Admin

	GET    /admin/questions               → ListQuestions (?q=, ?pub_date=, ?o=)
	POST   /admin/questions               → CreateQuestion
	GET    /admin/questions/{id}          → GetQuestion
	PUT    /admin/questions/{id}          → UpdateQuestion
	DELETE /admin/questions/{id}          → DeleteQuestion (choices cascade)
	POST   /admin/questions/{id}/choices  → AddChoice
	DELETE /admin/choices/{id}            → DeleteChoice

Admin operations require the X-Admin-Key header.
*/
package handlers
