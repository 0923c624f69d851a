package logger

import (
	"regexp"
	"strings"
)

// sensitivePatterns match credentials that must never land in the log file.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password|auth)\s*[:=]\s*['"]?([a-zA-Z0-9_\-+/=]{8,})['"]?`),
	regexp.MustCompile(`(?i)(bearer\s+)([a-zA-Z0-9_\-+/=]{20,})`),
	regexp.MustCompile(`(?i)(sk-[a-zA-Z0-9]{20,})`),
	regexp.MustCompile(`(?i)(AIza[a-zA-Z0-9_\-]{30,})`),
	regexp.MustCompile(`(?i)(x-goog-api-key:\s*)([a-zA-Z0-9_\-+/=]{8,})`),
}

// SanitizeLog removes sensitive values from a log message while keeping the
// surrounding text readable.
func SanitizeLog(message string) string {
	result := message

	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			parts := strings.SplitN(match, ":", 2)
			if len(parts) == 2 {
				return parts[0] + ": ***REDACTED***"
			}
			if strings.Contains(strings.ToLower(match), "sk-") {
				return "sk-***REDACTED***"
			}
			if strings.HasPrefix(match, "AIza") {
				return "AIza***REDACTED***"
			}
			return "***REDACTED***"
		})
	}

	return result
}
