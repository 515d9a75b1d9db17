// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package integrity guards the correctness of survey response data.

# Fingerprints

A respondent is identified per survey by a SHA-256 digest of client signals:

	hash := integrity.Fingerprint(integrity.Signals{IP: ip, UserAgent: ua, SurveyID: id})

An advanced client token, when supplied, replaces IP and user agent.

# Duplicate Guard

Guard looks fingerprints up in a rolling window (30 days by default) and records
new ones. It only does work for surveys with prevent_duplicates set:

	guard := integrity.NewGuard(0, nil)
	err := guard.EnforceAndRecord(ctx, tx, survey, signals) // apperr.KindDuplicate

# Lifecycle Gate

Gate applies lazy expiry (Observe), admits submissions (Admit) and validates owner
status changes (Transition). A survey whose expires_at has passed is refused even
before its expired status is persisted.

# Answer Validation

ValidateAnswers cross-checks answers against question definitions:

  - unknown question or choice: apperr.KindStaleSchema (409)
  - missing answer, several answers to a single-valued question, repeated
    choice: apperr.KindValidation (400)

A submission passes Gate, then ValidateAnswers, then Guard, then persistence.
*/
package integrity
