// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package integrity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Signals are the client attributes a respondent is recognized by.
type Signals struct {
	IP        string
	UserAgent string
	SurveyID  string
	// Advanced is an optional client-side fingerprint token. When present it
	// replaces IP and user agent.
	Advanced string
}

// Fingerprint derives the respondent digest for a survey: SHA-256 over
// "advanced|survey" or "ip|user_agent|survey", as 64 lowercase hex chars.
// No salt is applied so repeat visits map to the same value.
func Fingerprint(s Signals) string {
	var input string
	if s.Advanced != "" {
		input = s.Advanced + "|" + s.SurveyID
	} else {
		input = s.IP + "|" + s.UserAgent + "|" + s.SurveyID
	}
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
