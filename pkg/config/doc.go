// Package config defines the YAML configuration for the signage designer
// and its loading pipeline: parse, apply defaults, apply SIGNAGE_* environment
// overrides, validate. Every consumer receives a fully defaulted, validated
// Config; zero values never leak past LoadConfig.
package config
