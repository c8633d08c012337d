package env

import (
	"os"
	"strconv"
	"strings"
)

// Prefix namespaces variables owned by this service.
const Prefix = "SHOPCART_"

// Get returns SHOPCART_<key>, then the bare key (platform variables such as
// PORT), then fallback.
func Get(key, fallback string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return fallback
}

// Bool parses a boolean variable; unparseable values yield fallback.
func Bool(key string, fallback bool) bool {
	val, ok := lookup(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func lookup(key string) (string, bool) {
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val, true
		}
	}
	return "", false
}
