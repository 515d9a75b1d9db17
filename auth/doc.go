// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides owner tokens and share link tokens.

# Owner Tokens

Owners authenticate with HS256 JWTs whose subject is the owner id:

	token, err := auth.IssueOwnerToken(ownerID, secret, 24*time.Hour)
	ownerID, err := auth.ParseOwnerToken(token, secret)

Tokens must carry an expiry and the quickly-survey issuer. Anything else fails
with ErrInvalidToken.

# Share Tokens

Share link tokens are random 24-byte secrets, URL-safe base64 without padding:

	token, err := auth.GenerateShareToken()
*/
package auth
