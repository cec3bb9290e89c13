// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls site.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(s, cfg, m)

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics
	GET /        - Redirect to /polls/

Public pages (HTML, or JSON with Accept: application/json):

	GET  /polls/              - Latest published questions
	GET  /polls/{id}/         - Voting form
	GET  /polls/{id}/results/ - Votes per choice
	POST /polls/{id}/vote/    - Record a vote, redirect to results

Admin (requires X-Admin-Key):

	GET    /admin/questions              - List, search, filter
	POST   /admin/questions              - Create with inline choices
	GET    /admin/questions/{id}         - Change view
	PUT    /admin/questions/{id}         - Edit
	DELETE /admin/questions/{id}         - Delete with choices
	POST   /admin/questions/{id}/choices - Add a choice
	DELETE /admin/choices/{id}           - Delete a choice

Static assets are served from /static/.

# Middleware

Page and admin routes are wrapped in WithLogging, WithTracing and
WithMetrics, keyed by their route pattern. CORS is applied by the caller
around the whole mux.
*/
package router
