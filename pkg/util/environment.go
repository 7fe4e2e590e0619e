package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "GTFS_EXTRACT_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable returns the prefixed variable, or fallback when it is unset or empty.
func GetEnvironmentVariable(name string, fallback string) string {
	if value := GetEnvironmentVariables()[EnvironmentPrefix+name]; value != "" {
		return value
	}

	return fallback
}
