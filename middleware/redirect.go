package middleware

import "strings"

// LanguagePolicy controls how the canonical URL of a request is built.
type LanguagePolicy struct {
	// URLLang encodes the active language as a subdomain of the root domain.
	URLLang bool
	// SSL forces HTTPS for logged-in users.
	SSL bool
	// DefaultLang never gets a subdomain.
	DefaultLang string
}

// RedirectInput is everything ComputeRedirectTarget looks at.
type RedirectInput struct {
	Scheme   string
	Host     string
	Secure   bool
	LoggedIn bool
	// Lang is the language resolved for the request.
	Lang   string
	Policy LanguagePolicy
	// IsLanguage reports whether a host label is a supported language code.
	IsLanguage func(string) bool
}

// ComputeRedirectTarget returns the canonical scheme://host for a request and
// whether it differs from the one requested. dropLang reports that the host
// now carries the language, so the "lang" query parameter must be removed.
//
// With URLLang on, a leading language label is stripped from the host. When
// the remaining host is a root domain (exactly one dot) the active language is
// put back as a subdomain unless it is the default language. Hosts with more
// labels are left untouched.
func ComputeRedirectTarget(in RedirectInput) (target string, redirect, dropLang bool) {
	host := in.Host

	if in.Policy.URLLang {
		reduced := host
		if label, rest, ok := strings.Cut(host, "."); ok && in.IsLanguage != nil && in.IsLanguage(strings.ToLower(label)) {
			reduced = rest
		}
		if strings.Count(reduced, ".") == 1 {
			dropLang = true
			host = reduced
			if in.Lang != "" && in.Lang != in.Policy.DefaultLang {
				host = in.Lang + "." + reduced
			}
		}
	}

	scheme := in.Scheme
	if in.Policy.SSL && in.LoggedIn && !in.Secure {
		scheme = "https"
	}

	target = scheme + "://" + host
	return target, target != in.Scheme+"://"+in.Host, dropLang
}

// redirectURL appends path and the encoded query to target.
// url.Values.Encode sorts by key, so the result is stable.
func redirectURL(target, path, query string) string {
	if query == "" {
		return target + path
	}
	return target + path + "?" + query
}
