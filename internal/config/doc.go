// Package config provides configuration structures and utilities for
// issuesreport. It defines the input, output and report options, and the
// optional .issuesreport YAML file with per-rule overrides.
package config
