// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadEnvFile reads an optional .env file. Variables already set in the
environment win.

# Flags and Environment Variables

	-p                 PORT                 Server port (default 3318)
	-d                 DATABASE_URL         Database URL (required)
	-t                 DATABASE_TYPE        sqlite or postgres (default sqlite)
	--token-secret     OWNER_TOKEN_SECRET   Owner token signing secret (required)
	--duplicate-window DUPLICATE_WINDOW     Fingerprint window (default 720h)
	--survey-ttl       DEFAULT_SURVEY_TTL   Survey lifetime (default 720h)
	--sweep-interval   SWEEP_INTERVAL       Background sweep (default 0, disabled)
	--log-level        LOG_LEVEL            debug, info, warn or error
	--log-format       LOG_FORMAT           text or json

CLI flags take precedence over environment variables.

--issue-token prints a signed owner token and exits; it needs only the secret.
*/
package cliparse
