// Package redact scrubs credentials and other secrets from strings before
// they are logged or returned in error responses. Notification handshakes
// carry the bearer credential in the query string, so request URLs must pass
// through here before they reach a log line.
package redact

import (
	"net/url"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// tokenQueryParams are query parameters whose values are always credentials.
var tokenQueryParams = []string{"access_token", "token"}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules are applied in order; earlier, more specific rules win.
var rules = []rule{
	// Database connection strings: keep the scheme, drop user info.
	{
		regexp.MustCompile(`(?i)\b(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),
		"${1}://" + RedactedCredentialPlaceholder + "@",
	},
	// access_token=... in URLs and query strings.
	{
		regexp.MustCompile(`(?i)\b(access_token|token)=[^&\s"]+`),
		"${1}=" + RedactedCredentialPlaceholder,
	},
	// Authorization: Bearer ...
	{
		regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/=]+`),
		"${1} " + RedactedCredentialPlaceholder,
	},
	// Bare JWTs: three base64url segments, header starting with eyJ.
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	// password=..., secret: ...
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|jwt_secret)(["']?\s*[=:]\s*["']?)[^"'&\s]{3,}`),
		"${1}${2}" + RedactedKeyPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// URL returns u as a string with credential-bearing query parameters
// replaced. The input is not modified.
func URL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clone := *u
	q := clone.Query()
	changed := false
	for _, key := range tokenQueryParams {
		if q.Has(key) {
			q.Set(key, RedactedCredentialPlaceholder)
			changed = true
		}
	}
	if changed {
		clone.RawQuery = q.Encode()
	}
	clone.User = nil
	return String(clone.String())
}
