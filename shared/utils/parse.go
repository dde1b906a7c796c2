package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIntegerParam parses the value of key on the given query params as an int,
// returning defaultValue when the key is missing or empty
func ParseIntegerParam(params map[string]string, key string, defaultValue int64) (int64, error) {
	raw := strings.TrimSpace(params[key])
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing param %s: %q is not an integer", key, raw)
	}

	return value, nil
}
