package helper

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const envPrefix = "ENV:"

// ResolveEnv replaces values of the form "ENV:NAME" with the content of the
// environment variable NAME. Any other value is returned unchanged.
func ResolveEnv(in string) string {
	if strings.HasPrefix(in, envPrefix) {
		return os.Getenv(in[len(envPrefix):])
	}
	return in
}

func SetDefaultStringIfEmpty(value, defaultValue, field, kind string) string {
	if len(value) == 0 {
		log.WithFields(log.Fields{"kind": kind, "field": field}).Infof("no value specified or env variable not found, assuming default %q", defaultValue)
		return defaultValue
	}
	return value
}
