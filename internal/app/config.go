package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// envDefaults reads flag defaults from the environment and remembers every
// value it could not parse, so a typo fails startup instead of being ignored.
type envDefaults struct {
	errs []error
}

func (e *envDefaults) String(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func (e *envDefaults) Int(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return fallback
	}

	return i
}

func (e *envDefaults) Duration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: %w", key, v, err))
		return fallback
	}

	return d
}

// Err returns the parse failures joined together, or nil.
func (e *envDefaults) Err() error {
	return errors.Join(e.errs...)
}
