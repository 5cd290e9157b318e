package ui

import (
	"github.com/iburimskiy/racing-backdrop/internal/config"
	"github.com/iburimskiy/racing-backdrop/internal/prefs"
	"github.com/iburimskiy/racing-backdrop/internal/theme"
)

// RestoreTheme picks the starting mood and accent: a saved preference wins, then the
// configured default, then the built-in default.
func RestoreTheme(store prefs.Store, fallback config.ThemeSettings) (theme.Mood, theme.Accent) {
	mood, ok := lookup(store, prefs.KeyMood, fallback.Mood, theme.MoodByName)
	if !ok {
		mood = theme.DefaultMood()
	}
	accent, ok := lookup(store, prefs.KeyAccent, fallback.Accent, theme.AccentByKey)
	if !ok {
		accent = theme.DefaultAccent()
	}
	return mood, accent
}

func lookup[T any](store prefs.Store, key, fallback string, find func(string) (T, bool)) (T, bool) {
	if store != nil {
		if saved, ok := store.Get(key); ok {
			if v, ok := find(saved); ok {
				return v, true
			}
		}
	}
	return find(fallback)
}
