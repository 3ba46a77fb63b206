package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/lookup"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/tagset"
)

// APIKeyEnv overrides lookup.api_key when set.
const APIKeyEnv = "WORDREPLACER_API_KEY"

// Config is the YAML configuration file.
type Config struct {
	Lookup         Lookup  `yaml:"lookup"`
	MaxInputLength int     `yaml:"max_input_length"`
	Punctuation    string  `yaml:"punctuation"`
	Tags           Tags    `yaml:"tags"`
	Tagger         Tagger  `yaml:"tagger"`
	History        History `yaml:"history"`
}

// Lookup configures the thesaurus client.
type Lookup struct {
	URLTemplate       string        `yaml:"url_template"`
	APIKey            string        `yaml:"api_key"`
	Timeout           time.Duration `yaml:"timeout"`
	RateLimitStatuses []int         `yaml:"rate_limit_statuses"`
	Categories        []string      `yaml:"categories"`
}

// Tags holds the tag membership tables.
type Tags struct {
	Noun      []string `yaml:"noun"`
	Adjective []string `yaml:"adjective"`
	Verb      []string `yaml:"verb"`
	Adverb    []string `yaml:"adverb"`
	Function  []string `yaml:"function"`
}

// Tagger configures the built-in rules tagger.
type Tagger struct {
	Lexicon string `yaml:"lexicon"`
}

// History configures run recording. An empty path disables it.
type History struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	sets := tagset.DefaultSets()
	return Config{
		Lookup: Lookup{
			URLTemplate:       "https://words.bighugelabs.com/api/2/{key}/{word}/json",
			Timeout:           lookup.DefaultTimeout,
			RateLimitStatuses: []int{303},
			Categories:        append([]string(nil), lookup.DefaultCategories...),
		},
		MaxInputLength: 500,
		Punctuation:    ".,-?!()",
		Tags: Tags{
			Noun:      sets.Noun,
			Adjective: sets.Adjective,
			Verb:      sets.Verb,
			Adverb:    sets.Adverb,
			Function:  sets.Function,
		},
	}
}

// Load reads a YAML file on top of Default. Keys absent from the file keep
// their default values; lists present in the file replace the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if key, ok := os.LookupEnv(APIKeyEnv); ok && key != "" {
		c.Lookup.APIKey = key
	}
}

// Validate checks the configuration for values the pipeline cannot use.
func (c Config) Validate() error {
	if c.Lookup.URLTemplate == "" {
		return fmt.Errorf("%w: lookup.url_template is empty", internalerr.ErrInvalidConfig)
	}
	if strings.Contains(c.Lookup.URLTemplate, "{key}") && c.Lookup.APIKey == "" {
		return fmt.Errorf("%w: lookup.url_template needs {key} but no api key is set (lookup.api_key or %s)",
			internalerr.ErrInvalidConfig, APIKeyEnv)
	}
	if c.MaxInputLength <= 0 {
		return fmt.Errorf("%w: max_input_length must be positive, got %d", internalerr.ErrInvalidConfig, c.MaxInputLength)
	}
	if c.Lookup.Timeout < 0 {
		return fmt.Errorf("%w: lookup.timeout must not be negative", internalerr.ErrInvalidConfig)
	}
	if len(c.Lookup.Categories) == 0 {
		return fmt.Errorf("%w: lookup.categories is empty", internalerr.ErrInvalidConfig)
	}
	for _, s := range c.Lookup.RateLimitStatuses {
		if s < 100 || s > 599 {
			return fmt.Errorf("%w: invalid rate limit status %d", internalerr.ErrInvalidConfig, s)
		}
	}
	if _, err := c.TagTable(); err != nil {
		return err
	}
	return nil
}

// TagTable builds the tag classification table.
func (c Config) TagTable() (*tagset.Table, error) {
	return tagset.New(tagset.Sets{
		Noun:      c.Tags.Noun,
		Adjective: c.Tags.Adjective,
		Verb:      c.Tags.Verb,
		Adverb:    c.Tags.Adverb,
		Function:  c.Tags.Function,
	})
}
