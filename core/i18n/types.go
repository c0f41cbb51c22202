package i18n

// M is a convenience type for placeholder maps used in translations.
type M map[string]any
