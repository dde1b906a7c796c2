package environment

import (
	"os"
	"strconv"
	"strings"
)

// GetString gets the environment var as a string
func GetString(varName string, defaultValue string) string {
	val, _ := os.LookupEnv(varName)
	if val == "" {
		return defaultValue
	}

	return val
}

// GetStringSlice gets the environment var as a comma separated list, empty
// entries are dropped
func GetStringSlice(varName string, defaultValue []string) []string {
	val, _ := os.LookupEnv(varName)
	if val == "" {
		return defaultValue
	}

	values := []string{}
	for _, v := range strings.Split(val, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return values
}

// GetInt64 gets the env var as an int
func GetInt64(varName string, defaultValue int64) int64 {
	val, ok := os.LookupEnv(varName)
	if !ok {
		return defaultValue
	}

	iVal, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}

	return iVal
}

// GetBool gets the env var as a boolean
func GetBool(varName string, defaultValue bool) bool {
	val, _ := os.LookupEnv(varName)
	if strings.ToLower(val) == "true" {
		return true
	}
	if strings.ToLower(val) == "false" {
		return false
	}

	return defaultValue
}
