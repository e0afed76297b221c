package logging

import (
	"regexp"
	"strings"
)

// Field names whose values are never logged.
var sensitiveFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
	"authorization",
	"credential",
	"phone",
	"email",
	"dob",
	"birth",
	"ssn",
	"mrn",
	"address",
}

// Patterns for patient identifiers that show up in free text.
var phiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),                // email
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),                                       // SSN
	regexp.MustCompile(`(?:\+?1[\s.-]?)?(?:\(\d{3}\)\s?|\b\d{3}[\s.-])\d{3}[\s.-]\d{4}\b`), // US phone
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),
}

// RedactedValue is the replacement for sensitive values.
const RedactedValue = "[REDACTED]"

// Redact replaces patient identifiers and credentials in a string.
func Redact(s string) string {
	result := s
	for _, pattern := range phiPatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// RedactMap redacts sensitive fields in a map.
func RedactMap(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))

	for k, v := range m {
		switch {
		case IsSensitiveField(k):
			result[k] = RedactedValue
		default:
			if nested, ok := v.(map[string]interface{}); ok {
				result[k] = RedactMap(nested)
			} else if str, ok := v.(string); ok {
				result[k] = Redact(str)
			} else {
				result[k] = v
			}
		}
	}

	return result
}

// IsSensitiveField checks if a field name is considered sensitive.
func IsSensitiveField(name string) bool {
	lowerName := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lowerName, field) {
			return true
		}
	}
	return false
}
