// Package redact strips credentials and tokens out of strings before they
// reach the logs. Error values often carry connection strings or raw JWTs;
// everything the API logs about a failure goes through here first.
package redact

import "regexp"

// Redaction placeholders.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	KeyPlaceholder        = "[REDACTED_KEY]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
)

var (
	// user:password@ inside database connection URLs
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|redis|mysql)://[^@\s]+@`)

	// password=..., passwd: '...'
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{3,}`)

	// api_key=..., secret: ..., token=...
	secretRegex = regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// three-part base64url JWTs
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// email addresses, which are account identifiers here
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String redacts credentials, secrets, JWTs and email addresses from input.
func String(input string) string {
	if input == "" {
		return input
	}

	// JWTs go first: "token eyJ..." would otherwise be eaten by the
	// generic secret pattern.
	result := jwtRegex.ReplaceAllString(input, JWTPlaceholder)
	result = dbConnRegex.ReplaceAllString(result, "$1://"+CredentialPlaceholder+"@")
	result = passwordRegex.ReplaceAllString(result, "$1$2"+CredentialPlaceholder)
	result = secretRegex.ReplaceAllString(result, "$1$2"+KeyPlaceholder)
	result = emailRegex.ReplaceAllString(result, EmailPlaceholder)
	return result
}

// Error redacts an error's Error() output. Returns "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
