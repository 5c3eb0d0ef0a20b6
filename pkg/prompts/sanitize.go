package prompts

import (
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf8"

	libinjection "github.com/corazawaf/libinjection-go"
)

const (
	// MaxUserDataLength is the longest user payload interpolated into a
	// prompt; anything longer is cut and marked.
	MaxUserDataLength = 50000

	// TruncationMarker is appended whenever a payload is cut so the model
	// (and anyone reading the prompt) can tell the data is partial.
	TruncationMarker = "...[TRUNCATED]"

	// UserDataOpen and UserDataClose delimit untrusted content inside a
	// prompt. Tag stripping runs before wrapping, so the payload can never
	// contain a closing delimiter of its own.
	UserDataOpen  = "<user_data>"
	UserDataClose = "</user_data>"
)

// tagPattern matches HTML/XML-tag-like substrings. Removing them prevents a
// payload from prematurely closing the user-data delimiter.
var tagPattern = regexp.MustCompile(`</?[^<>]*>`)

// StripTags removes every tag-like substring from s. It reapplies the
// pattern until the text is stable, so sequences that only become tag-like
// after one removal pass are stripped too.
func StripTags(s string) string {
	for {
		stripped := tagPattern.ReplaceAllString(s, "")
		if stripped == s {
			return stripped
		}
		s = stripped
	}
}

// Sanitize prepares a user-supplied string for inclusion in a prompt: tag
// stripping, length capping, then wrapping in the untrusted-data envelope.
// Pure; always returns a wrapped string, even for empty input.
func Sanitize(s string) string {
	cleaned := StripTags(s)
	if len(cleaned) > MaxUserDataLength {
		// Cutting mid-rune would leave invalid UTF-8 before the marker;
		// back up to the start of the rune straddling the limit.
		cut := MaxUserDataLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut] + TruncationMarker
	}
	return UserDataOpen + "\n" + cleaned + "\n" + UserDataClose
}

// SanitizeValue serializes a structured value to canonical JSON and sanitizes
// the result. Marshal failures degrade to the fmt representation; the
// sanitizer itself never fails.
func SanitizeValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return Sanitize(fmt.Sprintf("%v", v))
	}
	return Sanitize(string(data))
}

// LooksHostile reports whether raw user text trips the XSS or SQL-injection
// detectors. Detection is advisory only: callers log a warning for audit
// trails, while containment stays with the envelope contract.
func LooksHostile(s string) bool {
	if libinjection.IsXSS(s) {
		return true
	}
	isSQLi, _ := libinjection.IsSQLi(s)
	return isSQLi
}
