package logging

import (
	"net/url"
	"regexp"
)

const (
	// MaxBodyLogLength is the maximum length of a response body snippet to log
	MaxBodyLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Matches password=xxx, pwd=xxx, pass=xxx (until next delimiter), as in the login form body
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches HTTP Basic authorization values
	basicAuthPattern = regexp.MustCompile(`(?i)Basic\s+[A-Za-z0-9+/=]+`)

	// Matches user:pass@host credentials embedded in URLs
	userinfoPattern = regexp.MustCompile(`://[^:/\s]+:[^@/\s]+@`)
)

// SanitizeURL removes userinfo and password-like query values from a URL before logging.
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return SanitizeString(raw)
	}
	if u.User != nil {
		u.User = url.User(RedactedText)
	}
	q := u.Query()
	changed := false
	for key := range q {
		if passwordPattern.MatchString(key + "=x") {
			q.Set(key, RedactedText)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// SanitizeString redacts passwords, Basic credentials and URL userinfo from free text.
func SanitizeString(s string) string {
	if s == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(s, "${1}="+RedactedText)
	sanitized = basicAuthPattern.ReplaceAllString(sanitized, "Basic "+RedactedText)
	sanitized = userinfoPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@")
	return sanitized
}

// SanitizeError sanitizes error messages that might contain credentials.
// Use this before logging any error from a backend call.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeBody truncates and sanitizes a response body snippet for logging.
func SanitizeBody(body []byte) string {
	return TruncateString(SanitizeString(string(body)), MaxBodyLogLength)
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
