package config

import (
	"fmt"
	"net/http"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/lookup"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagger"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagset"
)

// Loader loads the configuration file and constructs components
type Loader struct {
	// ConfigPath is optional; defaults are used when empty.
	ConfigPath string
}

// Components holds the objects built from a configuration
type Components struct {
	Config Config
	Tags   *tagset.Table
	Tagger tagger.Tagger
	Lookup *lookup.Client
}

// Load reads the configuration and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return Build(cfg)
}

// Build constructs components from an in-memory configuration.
func Build(cfg Config) (*Components, error) {
	tags, err := cfg.TagTable()
	if err != nil {
		return nil, fmt.Errorf("build tag table: %w", err)
	}

	var extra map[string]string
	if cfg.Tagger.Lexicon != "" {
		extra, err = tagger.LoadLexicon(cfg.Tagger.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}

	timeout := cfg.Lookup.Timeout
	if timeout == 0 {
		timeout = lookup.DefaultTimeout
	}

	return &Components{
		Config: cfg,
		Tags:   tags,
		Tagger: tagger.NewRules(extra),
		Lookup: &lookup.Client{
			URLTemplate:       cfg.Lookup.URLTemplate,
			APIKey:            cfg.Lookup.APIKey,
			RateLimitStatuses: cfg.Lookup.RateLimitStatuses,
			HTTPClient:        &http.Client{Timeout: timeout},
		},
	}, nil
}
