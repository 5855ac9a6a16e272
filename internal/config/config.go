// Package config loads and validates YAML rule files. A rule file names one
// or more cleanup rules, each pairing root paths with filter conditions:
//
//	rules:
//	  - name: old downloads
//	    paths: ["~/Downloads"]
//	    older_than: 30d
//	    larger_than: 100MB
//	    patterns: ["*.tmp", "*.log"]
//	    extensions: [".bak"]
//	    skip_hidden: true
//
// Malformed rule files are fatal before any scanning begins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fclean/internal/filter"
	"fclean/internal/plan"
)

// RuleConfig is one rule as written in YAML. Age and size conditions stay as
// strings here; Rules parses them into a typed filter.
type RuleConfig struct {
	Name        string   `yaml:"name"`
	Paths       []string `yaml:"paths"`
	OlderThan   string   `yaml:"older_than"`
	NewerThan   string   `yaml:"newer_than"`
	LargerThan  string   `yaml:"larger_than"`
	SmallerThan string   `yaml:"smaller_than"`
	Patterns    []string `yaml:"patterns"`
	Extensions  []string `yaml:"extensions"`
	SkipHidden  bool     `yaml:"skip_hidden"`
}

// Config is the top-level rule file.
type Config struct {
	RuleConfigs []RuleConfig `yaml:"rules"`
}

// Load reads and parses a rule file. A missing file is an error: unlike
// optional tool settings, a rule file the user pointed at must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	return &cfg, nil
}

// Rules converts the raw configuration into evaluable rules, parsing every
// age/size string and validating every pattern. The first bad value fails
// the whole conversion, identifying the offending rule.
func (c *Config) Rules() ([]plan.Rule, error) {
	if len(c.RuleConfigs) == 0 {
		return nil, fmt.Errorf("rule file contains no rules")
	}

	rules := make([]plan.Rule, 0, len(c.RuleConfigs))
	for i, rc := range c.RuleConfigs {
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i+1)
		}
		if len(rc.Paths) == 0 {
			return nil, fmt.Errorf("%s: no paths given", name)
		}

		var f filter.Filter
		var err error
		if rc.OlderThan != "" {
			if f.MinAge, err = filter.ParseDuration(rc.OlderThan); err != nil {
				return nil, fmt.Errorf("%s: older_than: %w", name, err)
			}
		}
		if rc.NewerThan != "" {
			if f.MaxAge, err = filter.ParseDuration(rc.NewerThan); err != nil {
				return nil, fmt.Errorf("%s: newer_than: %w", name, err)
			}
		}
		if rc.LargerThan != "" {
			if f.MinSize, err = filter.ParseSize(rc.LargerThan); err != nil {
				return nil, fmt.Errorf("%s: larger_than: %w", name, err)
			}
		}
		if rc.SmallerThan != "" {
			if f.MaxSize, err = filter.ParseSize(rc.SmallerThan); err != nil {
				return nil, fmt.Errorf("%s: smaller_than: %w", name, err)
			}
		}
		f.Patterns = rc.Patterns
		f.Extensions = rc.Extensions
		f.SkipHidden = rc.SkipHidden
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		paths := make([]string, len(rc.Paths))
		for j, p := range rc.Paths {
			paths[j] = ExpandPath(p)
		}

		rules = append(rules, plan.Rule{Name: name, Paths: paths, Filter: f})
	}
	return rules, nil
}

// ExpandPath resolves a leading ~ to the user's home directory. Expansion
// happens here at the configuration boundary; the core packages only ever
// see concrete paths.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
