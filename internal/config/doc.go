// Package config defines the application configuration structure and its
// loading logic. Values come from defaults, an optional config.yaml, and
// CASETRIAGE_-prefixed environment variables, in increasing precedence.
package config
