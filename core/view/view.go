// Package view exposes the visual theme a response is rendered with.
package view

import (
	"context"
	"strings"
)

const (
	// ThemeDefault is the stock theme.
	ThemeDefault = "default"
	// ThemeResponsive is the responsive layout.
	ThemeResponsive = "responsive"
)

type themeKey struct{}

// Themes resolves the active theme for a request.
type Themes struct {
	Default string `env:"VIEW_THEME" envDefault:"default"`
}

// NewThemes returns a resolver using def when a request sets no theme.
func NewThemes(def string) *Themes {
	return &Themes{Default: def}
}

// ActiveTheme returns the theme set on ctx with WithTheme, or the configured default.
func (t *Themes) ActiveTheme(ctx context.Context) string {
	if theme, ok := ctx.Value(themeKey{}).(string); ok && theme != "" {
		return theme
	}
	if t == nil || strings.TrimSpace(t.Default) == "" {
		return ThemeDefault
	}
	return t.Default
}

// WithTheme overrides the theme for the request carrying ctx.
func WithTheme(ctx context.Context, theme string) context.Context {
	return context.WithValue(ctx, themeKey{}, theme)
}
