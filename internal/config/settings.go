package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid settings")

// Settings is the user-editable part of the configuration.
type Settings struct {
	Window WindowSettings `yaml:"window"`
	Audio  AudioSettings  `yaml:"audio"`
	Theme  ThemeSettings  `yaml:"theme"`

	// PrefsPath is where the mood/accent preferences are persisted. Empty disables persistence.
	PrefsPath string `yaml:"prefs_path"`
	LogLevel  string `yaml:"log_level"`
}

type WindowSettings struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

type AudioSettings struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
	BufferMS   int  `yaml:"buffer_ms"`
	Muted      bool `yaml:"muted"`
}

// ThemeSettings are the fallbacks used when no preference has been saved yet.
type ThemeSettings struct {
	Mood   string `yaml:"mood"`
	Accent string `yaml:"accent"`
}

func Default() *Settings {
	return &Settings{
		Window: WindowSettings{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Audio: AudioSettings{
			Enabled:    true,
			SampleRate: SampleRate,
			BufferMS:   BufferMS,
		},
		Theme: ThemeSettings{
			Mood:   "AURA",
			Accent: "BLUE",
		},
		PrefsPath: defaultPrefsPath(),
		LogLevel:  "info",
	}
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "racing-backdrop", "prefs.yaml")
}

// Load reads settings from path on top of the defaults. A missing file is not an error.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the settings as YAML, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Audio.SampleRate < 8000 || s.Audio.SampleRate > 192000 {
		return fmt.Errorf("%w: sample_rate %d", ErrInvalid, s.Audio.SampleRate)
	}
	if s.Audio.BufferMS <= 0 || s.Audio.BufferMS > 1000 {
		return fmt.Errorf("%w: buffer_ms %d", ErrInvalid, s.Audio.BufferMS)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, s.LogLevel)
	}
	return nil
}
