// Package config loads the YAML configuration of the viewgen CLI.
package config
