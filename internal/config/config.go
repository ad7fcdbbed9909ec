// Package config carries the extraction pipeline tunables. Defaults are
// defined here; an optional YAML file and SHOEDEX_-prefixed environment
// variables override them. Credentials (DATABASE_URL, API keys) stay in the
// environment and are read by the binaries directly.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// MinStructuredHeadings is the heading count below which an article is
	// treated as unstructured and body mentions are scanned instead.
	MinStructuredHeadings int `koanf:"min_structured_headings"`

	// WeightUnitThreshold separates "plausibly grams" from "plausibly an
	// unconverted ounce value" when merging conflicting weights.
	WeightUnitThreshold float64 `koanf:"weight_unit_threshold"`

	// MaxHeadingLength is the ceiling above which a line is prose, not a
	// heading.
	MaxHeadingLength int `koanf:"max_heading_length"`

	// HeadingWindow bounds how many characters after a heading are searched
	// for specs. The window is additionally capped at the next heading.
	HeadingWindow int `koanf:"heading_window"`

	// MentionWindowBefore/After bound the search radius around an
	// unstructured mention.
	MentionWindowBefore int `koanf:"mention_window_before"`
	MentionWindowAfter  int `koanf:"mention_window_after"`

	// Plausibility bounds. Matches outside these are discarded.
	WeightMinGrams float64 `koanf:"weight_min_grams"`
	WeightMaxGrams float64 `koanf:"weight_max_grams"`
	PriceMin       float64 `koanf:"price_min"`
	PriceMax       float64 `koanf:"price_max"`
	StackMaxMM     float64 `koanf:"stack_max_mm"`

	// LLMProvider selects the fallback extractor: "openai", "anthropic" or
	// empty to disable the fallback entirely.
	LLMProvider string `koanf:"llm_provider"`

	// FetchPageSize is the page size requested from the content source.
	FetchPageSize int `koanf:"fetch_page_size"`

	// MaxRetries is the attempt ceiling before an article is dead-lettered.
	MaxRetries int `koanf:"max_retries"`

	// MetricsAddr is the extractor's Prometheus listen address.
	MetricsAddr string `koanf:"metrics_addr"`
}

func Default() Config {
	return Config{
		MinStructuredHeadings: 2,
		WeightUnitThreshold:   50,
		MaxHeadingLength:      80,
		HeadingWindow:         1800,
		MentionWindowBefore:   150,
		MentionWindowAfter:    600,
		WeightMinGrams:        100,
		WeightMaxGrams:        500,
		PriceMin:              40,
		PriceMax:              500,
		StackMaxMM:            60,
		LLMProvider:           "openai",
		FetchPageSize:         100,
		MaxRetries:            3,
		MetricsAddr:           ":9091",
	}
}

// Load builds the config from defaults, an optional YAML file and the
// environment, in that order. Path may be empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	err := k.Load(env.Provider("SHOEDEX_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SHOEDEX_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading config from env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}
