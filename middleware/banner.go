package middleware

import (
	"bytes"
	"html"

	"github.com/goteo/foundation/core/view"
)

// Anchors the shadowing banner is inserted after.
const (
	AnchorDefault    = `<div id="header">`
	AnchorResponsive = `<body role="document">`
)

// BannerAnchor returns the markup the banner follows in the given theme.
func BannerAnchor(theme string) string {
	if theme == view.ThemeResponsive {
		return AnchorResponsive
	}
	return AnchorDefault
}

// ShadowBanner renders the "Back to NAME" bar shown while shadowing a user.
func ShadowBanner(name string) string {
	return `<div class="user-shadowing-bar">Back to <a href="/user/logout">` + html.EscapeString(name) + `</a></div>`
}

// InjectShadowBanner inserts the banner for name right after the first
// occurrence of anchor. It reports false, leaving body untouched, when the
// anchor is missing.
func InjectShadowBanner(body []byte, anchor, name string) ([]byte, bool) {
	i := bytes.Index(body, []byte(anchor))
	if i < 0 {
		return body, false
	}
	at := i + len(anchor)
	banner := ShadowBanner(name)

	out := make([]byte, 0, len(body)+len(banner))
	out = append(out, body[:at]...)
	out = append(out, banner...)
	out = append(out, body[at:]...)
	return out, true
}
