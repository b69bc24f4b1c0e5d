//go:build js && wasm

// Package env looks up configuration values from the process environment,
// or from the Worker bindings when running on Cloudflare Workers.
package env

import "github.com/syumai/workers/cloudflare"

// Get retrieves a variable from the Cloudflare Workers environment.
// Empty values count as unset.
func Get(key string) (string, bool) {
	value := cloudflare.Getenv(key)
	if value == "" {
		return "", false
	}
	return value, true
}

// GetOrDefault retrieves an environment variable with a default value
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}
