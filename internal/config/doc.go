// Package config loads play settings from an optional YAML file.
package config
