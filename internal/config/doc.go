// Package config loads drover configuration from drover.json and
// DROVER_* environment variables, with environment taking precedence.
package config
