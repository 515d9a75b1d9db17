// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Survey API server.

Quickly Survey collects survey responses while keeping them honest: repeat
submissions are recognized by a respondent fingerprint, expired surveys refuse
answers, surveys lock on their first response, and answers are checked
against the survey's current questions.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	DATABASE_URL=file:survey.db OWNER_TOKEN_SECRET=dev go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-secret dev

Issue an owner token for local testing:

	go run . -token-secret dev -issue-token owner-1

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - OWNER_TOKEN_SECRET (-token-secret): HS256 secret for owner tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DUPLICATE_WINDOW (-duplicate-window): Fingerprint lifetime (default: 720h)
  - DEFAULT_SURVEY_TTL (-survey-ttl): Survey lifetime (default: 720h)
  - SWEEP_INTERVAL (-sweep-interval): Background expiry and purge (default: off)
  - LOG_LEVEL, LOG_FORMAT (-log-level, -log-format): slog level and text|json

# Architecture

  - integrity: Fingerprint, duplicate guard, lifecycle gate, answer validator
  - service: Transactions around the integrity rules
  - handlers: HTTP request handlers
  - router: chi routes and middleware stack
  - middleware: Logging, CORS, owner auth, JSON and error helpers
  - db: Store, queries and migrations for SQLite and PostgreSQL
  - apperr, locale: Typed errors and their translations
  - auth: Owner tokens and share tokens
  - cliparse: Configuration parsing
  - sweeper: Periodic expiry and fingerprint retention

See package documentation for each component.
*/
package main
