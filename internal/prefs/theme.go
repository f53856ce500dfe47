package prefs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/runnerr0/arcade/internal/storage"
)

// Theme is the colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	DefaultTheme = ThemeDark
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Themes is the persisted theme preference. The value is stored as a bare
// string, not JSON.
type Themes struct {
	slot
}

// NewThemes returns the theme preference stored in store.
func NewThemes(store storage.Storage, logger zerolog.Logger) *Themes {
	return &Themes{slot: newSlot(store, ThemeKey, logger)}
}

// Get returns the stored theme, or DefaultTheme when nothing valid is
// stored.
func (t *Themes) Get(ctx context.Context) Theme {
	v, ok := t.raw(ctx)
	if !ok {
		return DefaultTheme
	}
	theme, err := ParseTheme(v)
	if err != nil {
		return DefaultTheme
	}
	return theme
}

// Set stores theme.
func (t *Themes) Set(ctx context.Context, theme Theme) {
	t.writeRaw(ctx, string(theme))
}

// Toggle flips between dark and light and returns the new theme.
func (t *Themes) Toggle(ctx context.Context) Theme {
	next := ThemeLight
	if t.Get(ctx) == ThemeLight {
		next = ThemeDark
	}
	t.Set(ctx, next)
	return next
}

// Subscribe registers fn to run after the theme changes.
func (t *Themes) Subscribe(fn func()) func() {
	return t.subscribe(fn)
}
