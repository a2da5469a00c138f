package config

import (
	"fmt"

	"github.com/nao1215/issuesreport/internal/model"
)

// RuleConfig holds rule-specific settings for a single rule key.
// This allows re-ranking or silencing individual rules of an engine.
type RuleConfig struct {
	// Severity replaces the severity the engine reported for this rule.
	// Empty keeps the engine's severity.
	Severity string `yaml:"severity,omitempty"`

	// Ignore drops every issue raised by this rule.
	Ignore bool `yaml:"ignore,omitempty"`
}

// File represents the structure of the .issuesreport configuration file.
// Pointer fields distinguish "not set" from zero values so that only the
// settings present in the file override the defaults.
type File struct {
	// Title is the default report title.
	Title string `yaml:"title,omitempty"`

	// InputFormat is the default input format.
	InputFormat string `yaml:"inputFormat,omitempty"`

	// PadWidth is the default console pad width.
	PadWidth *int `yaml:"padWidth,omitempty"`

	// Concurrency is the default number of concurrent decodes.
	Concurrency *int `yaml:"concurrency,omitempty"`

	// Color enables colors in the table report.
	Color *bool `yaml:"color,omitempty"`

	// MinSeverity drops issues less severe than this level.
	MinSeverity string `yaml:"minSeverity,omitempty"`

	// Rules maps rule keys to their rule-specific configurations.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`
}

// NewFile returns an empty configuration file.
func NewFile() *File {
	return &File{Rules: make(map[string]RuleConfig)}
}

// Validate checks that every severity named in the file exists.
func (cf *File) Validate() error {
	if cf.MinSeverity != "" {
		if _, err := model.ParseSeverity(cf.MinSeverity); err != nil {
			return fmt.Errorf("%w: minSeverity: %w", ErrInvalidRuleSeverity, err)
		}
	}
	for key, rule := range cf.Rules {
		if rule.Severity == "" {
			continue
		}
		if _, err := model.ParseSeverity(rule.Severity); err != nil {
			return fmt.Errorf("%w: rule %s: %w", ErrInvalidRuleSeverity, key, err)
		}
	}
	if cf.PadWidth != nil && *cf.PadWidth < 0 {
		return ErrInvalidPadWidth
	}
	if cf.Concurrency != nil && *cf.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// GetRuleConfig returns the configuration for a rule key.
func (cf *File) GetRuleConfig(ruleKey string) (RuleConfig, bool) {
	rule, ok := cf.Rules[ruleKey]
	return rule, ok
}

// Apply rewrites an issue according to the file. It returns false when the
// issue must be dropped. Severities are assumed valid (see Validate); an
// unparsable override is ignored.
func (cf *File) Apply(issue model.Issue) (model.Issue, bool) {
	if rule, ok := cf.GetRuleConfig(issue.RuleKey); ok {
		if rule.Ignore {
			return issue, false
		}
		if severity, err := model.ParseSeverity(rule.Severity); err == nil {
			issue.Severity = severity
		}
	}

	if cf.MinSeverity != "" {
		if minimum, err := model.ParseSeverity(cf.MinSeverity); err == nil && issue.Severity < minimum {
			return issue, false
		}
	}

	return issue, true
}

// HasIssueRules reports whether Apply can change or drop issues.
func (cf *File) HasIssueRules() bool {
	return cf.MinSeverity != "" || len(cf.Rules) > 0
}
