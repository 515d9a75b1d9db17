// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the connection pool, schema migrations and every SQL statement.

# Opening

Open connects with lib/pq (postgres) or modernc (sqlite), pings, and applies the
embedded golang-migrate migrations for that dialect:

	store, err := db.Open(ctx, db.DriverPostgres, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

SQLite runs with a single pooled connection, with foreign keys on and times
stored in a sortable text format.

# Transactions

WithTx scopes a unit of work. The callback receives Queries bound to the
transaction; returning an error rolls everything back:

	err := store.WithTx(ctx, "submit", func(q *db.Queries) error {
		survey, err := q.GetSurveyForUpdate(ctx, id)
		...
	})

Errors of type *apperr.Error pass through unchanged. Anything else comes back
as apperr.KindDatabase carrying the operation name.

# Tables

	survey 1──* question 1──* choice
	survey 1──* submission 1──* answer
	survey 1──* submission_fingerprint
	survey 1──* share_link

All foreign keys use ON DELETE CASCADE.
*/
package db
