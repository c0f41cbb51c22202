package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the Accept-Language header we are willing to parse.
const maxAcceptLanguageLength = 4096

// ParseAcceptLanguage returns the available language that best matches the
// Accept-Language header, or the first available language when none does.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Available: ["pl", "en", "de"]
// Returns: "en"
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(available))
	for _, a := range available {
		tags = append(tags, language.Make(a))
	}

	if code, ok := matchAcceptLanguage(language.NewMatcher(tags), header, available); ok {
		return code
	}
	return available[0]
}

// matchAcceptLanguage reports the supported language matching header, if any.
func matchAcceptLanguage(m language.Matcher, header string, supported []string) (string, bool) {
	if header == "" || len(supported) == 0 {
		return "", false
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return "", false
	}

	_, idx, conf := m.Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return "", false
	}
	return supported[idx], true
}

// ReplacePlaceholders replaces placeholders in the template string with values
// from the provided map. Placeholders use the format %{name}.
// If a placeholder is not found in the map, it remains unchanged.
//
// Example:
//
//	template: "Hello, %{name}! You have %{count} messages."
//	placeholders: M{"name": "John", "count": 5}
//	returns: "Hello, John! You have 5 messages."
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) < 1 {
		return template
	}

	result := template
	for key, value := range placeholders {
		placeholder := fmt.Sprintf("%%{%s}", key)
		replacement := fmt.Sprintf("%v", value)
		result = strings.ReplaceAll(result, placeholder, replacement)
	}

	return result
}
