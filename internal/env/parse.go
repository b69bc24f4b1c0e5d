package env

import (
	"fmt"
	"strconv"
	"time"
)

// GetDuration parses a duration such as "30s", falling back to defaultValue
// when the variable is unset.
func GetDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := Get(key)
	if !ok {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// GetInt64 parses a base-10 integer, falling back to defaultValue when the
// variable is unset.
func GetInt64(key string, defaultValue int64) (int64, error) {
	value, ok := Get(key)
	if !ok {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
