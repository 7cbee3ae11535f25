// Package redact scrubs credentials and other sensitive fragments from text
// before it reaches a log line. Client-facing messages never carry raw error
// text, so this package only guards the logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	Placeholder           = "[REDACTED]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order; earlier rules see the unmodified input.
var rules = []rule{
	// user:password@ part of a connection URL
	{regexp.MustCompile(`(?i)\b(postgres(?:ql)?|redis|rediss)://[^@\s/]+@`), "$1://" + CredentialPlaceholder + "@"},
	// Must run before the generic key rule so the whole token is caught.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`), JWTPlaceholder},
	{regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9_\-.~+/]+=*`), "Bearer " + JWTPlaceholder},
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd)(["']?\s*[=:]\s*["']?)[^"'&\s,}]+`), "$1$2" + CredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(jwt_secret|secret|api[_-]?key|token)(["']?\s*[=:]\s*["']?)[^"'&\s,}]{8,}`), "$1$2" + KeyPlaceholder},
	{regexp.MustCompile(`(?is)\b(SELECT|INSERT|UPDATE|DELETE)\b.*?\b(FROM|INTO|SET)\b[^;]*`), SQLPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+ \[|panic:)[\s\S]*`), StackPlaceholder},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
