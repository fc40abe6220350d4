package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cratedig/cratedig/internal/search"
)

type Config struct {
	// slskd integration (required for searching and downloading)
	Slskd SlskdConfig `koanf:"slskd"`

	// Search pipeline settings
	Search SearchConfig `koanf:"search"`

	// MusicBrainz settings
	MusicBrainz MusicBrainzConfig `koanf:"musicbrainz"`

	// History database location; empty means the XDG data directory
	HistoryPath string `koanf:"history_path"`
}

// SlskdConfig holds all slskd-related configuration.
type SlskdConfig struct {
	URL    string `koanf:"url"`    // e.g., "http://localhost:5030"
	APIKey string `koanf:"apikey"` // API key from slskd settings
}

// SearchConfig tunes the strategy pipeline. Pointer fields distinguish
// "unset" from an explicit false so defaults can fill the gaps.
type SearchConfig struct {
	FallbackSearch         *bool `koanf:"fallback_search"`
	TrackFallback          *bool `koanf:"track_fallback"`
	VolumeHandling         *bool `koanf:"volume_handling"`
	VariousArtistsHandling *bool `koanf:"various_artists_handling"`
	StripPunctuation       *bool `koanf:"strip_punctuation"`
	NormalizeDiacritics    *bool `koanf:"normalize_diacritics"`

	MinimumResults int `koanf:"minimum_results"`
	FileLimit      int `koanf:"file_limit"`
	ResponseLimit  int `koanf:"response_limit"`
	TimeoutSeconds int `koanf:"timeout_seconds"`
}

// MusicBrainzConfig holds MusicBrainz-related configuration.
type MusicBrainzConfig struct {
	Enabled    *bool `koanf:"enabled"`     // enrich requests with release metadata (default: true)
	AlbumsOnly *bool `koanf:"albums_only"` // filter release groups to albums only (default: true)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Normalize slskd URL (remove trailing slash)
	cfg.Slskd.URL = strings.TrimSuffix(cfg.Slskd.URL, "/")

	if cfg.HistoryPath != "" {
		cfg.HistoryPath = expandPath(cfg.HistoryPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cratedig/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cratedig", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasSlskdConfig returns true if slskd integration is configured.
func (c *Config) HasSlskdConfig() bool {
	return c.Slskd.URL != "" && c.Slskd.APIKey != ""
}

// MusicBrainzEnabled reports whether metadata enrichment should run.
func (c *Config) MusicBrainzEnabled() bool {
	return c.MusicBrainz.Enabled == nil || *c.MusicBrainz.Enabled
}

// SearchSettings returns the pipeline settings with defaults applied.
func (c *Config) SearchSettings() search.Settings {
	s := search.DefaultSettings()

	applyBool := func(dst, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool(&s.FallbackSearch, c.Search.FallbackSearch)
	applyBool(&s.TrackFallback, c.Search.TrackFallback)
	applyBool(&s.VolumeHandling, c.Search.VolumeHandling)
	applyBool(&s.VariousArtistsHandling, c.Search.VariousArtistsHandling)
	applyBool(&s.StripPunctuation, c.Search.StripPunctuation)
	applyBool(&s.NormalizeDiacritics, c.Search.NormalizeDiacritics)

	if c.Search.MinimumResults > 0 {
		s.MinimumResults = c.Search.MinimumResults
	}
	if c.Search.FileLimit > 0 {
		s.FileLimit = c.Search.FileLimit
	}
	if c.Search.ResponseLimit > 0 {
		s.ResponseLimit = c.Search.ResponseLimit
	}
	if c.Search.TimeoutSeconds > 0 {
		s.Timeout = time.Duration(c.Search.TimeoutSeconds) * time.Second
	}

	return s
}
