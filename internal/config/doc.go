// Package config loads and merges the service configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Secrets (the token signing key, the legacy encryption key) are resolved
// exactly once here at startup and passed explicitly into the components
// that need them; nothing reads them ambiently afterwards.
package config
