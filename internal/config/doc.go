// Package config provides configuration structures and utilities for clausediff.
// It defines the options for document extraction, sentence alignment, the
// extraction cache, report output and the HTTP server, and loads the
// optional .clausediff YAML file that overlays the defaults.
package config
