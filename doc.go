// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the polls server.

Polls publishes questions at a scheduled pub_date, lets visitors vote for
one choice per submission and shows the running tally. Questions are
managed through a small admin API.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	ADMIN_KEY=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-key secret

# Configuration

Required settings:

  - ADMIN_KEY (-admin-key): Key expected in the X-Admin-Key header

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: file:polls.db)
  - OTEL_ENDPOINT (-otel-endpoint): OTLP/HTTP trace endpoint
  - LOG_FORMAT (-log-format): json or text (default: json)

# Architecture

  - handlers: HTTP request handlers (public pages, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, tracing, metrics, admin key, CORS, JSON helpers
  - views: HTML pages rendered as templ components
  - store: Queries, vote transition, admin operations
  - models: Domain, page context and admin types
  - auth: Admin key validation
  - db: Connections, dialects and embedded migrations
  - metrics: Prometheus collectors
  - telemetry: OpenTelemetry tracer provider
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
