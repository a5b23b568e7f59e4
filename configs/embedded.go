// Package configs provides the embedded default configuration for newsletter-forge.
package configs

import "embed"

// DefaultsFile is the name of the embedded defaults file
const DefaultsFile = "defaults.yaml"

// EmbeddedConfigs exposes embedded configuration files for read-only access.
//
//go:embed *.yaml
var EmbeddedConfigs embed.FS
