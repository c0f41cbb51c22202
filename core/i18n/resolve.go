package i18n

import "strings"

// Signals are the request hints a language can be resolved from.
type Signals struct {
	// Query is the "lang" query parameter.
	Query string
	// Host is the requested host; its leading label may be a language code.
	Host string
	// Stored is the language remembered in the session.
	Stored string
	// AcceptLanguage is the raw Accept-Language header.
	AcceptLanguage string
}

// Resolve picks the request language: an explicit query parameter first, then
// a language subdomain, then the stored language, then the browser preference.
// The default language is returned when no signal names a supported language.
func (i *I18n) Resolve(s Signals) string {
	if code := strings.ToLower(strings.TrimSpace(s.Query)); i.Exists(code) {
		return code
	}
	if sub := Subdomain(s.Host); i.Exists(sub) {
		return sub
	}
	if code := strings.ToLower(strings.TrimSpace(s.Stored)); i.Exists(code) {
		return code
	}
	if code, ok := matchAcceptLanguage(i.matcher, s.AcceptLanguage, i.languages); ok {
		return code
	}
	return i.defaultLang
}

// Subdomain returns the leading label of a dotted host, without any port.
func Subdomain(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	if !strings.Contains(host, ".") {
		return ""
	}
	label, _, _ := strings.Cut(host, ".")
	return label
}
