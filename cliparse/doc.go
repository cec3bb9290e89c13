// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (default: file:polls.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Secret for the admin API (required)
  - OTelEndpoint: OTLP/HTTP endpoint for traces (optional)
  - LogFormat: json or text (default: json)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--admin-key     Admin API key
	--otel-endpoint Trace endpoint
	--log-format    Log format

# Environment Variables

Flags fall back to environment variables, decoded with caarlos0/env:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → --admin-key
	OTEL_ENDPOINT → --otel-endpoint
	LOG_FORMAT    → --log-format

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file first without overriding variables that are already set.

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY is missing
  - the port is outside 1-65535
  - the log format is not json or text
*/
package cliparse
