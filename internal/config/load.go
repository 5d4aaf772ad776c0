package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl"
	log "github.com/sirupsen/logrus"
)

// DefaultBackendURL is the endpoint of the backend's connectivity test route.
const DefaultBackendURL = "http://localhost:5000/api/test"

// Default returns a configuration pointing at DefaultBackendURL without any
// backing-service probes.
func Default() *Config {
	return &Config{
		Backend: &Backend{URL: DefaultBackendURL},
	}
}

// Load reads all .hcl files found below configDir. An empty configDir yields
// the default configuration.
func Load(configDir string) (*Config, error) {
	cfg := Default()
	if configDir == "" {
		return cfg, nil
	}

	configDir = strings.TrimRight(configDir, "/")

	matches, err := findFilesInPath(configDir)
	if err != nil {
		return nil, err
	}

	for _, m := range matches {
		log.Infof("found config file: %s", m)

		contents, err := os.ReadFile(m)
		if err != nil {
			return nil, err
		}

		fileCfg := Config{}
		if err := hcl.Unmarshal(contents, &fileCfg); err != nil {
			return nil, fmt.Errorf("could not parse configuration file %s: %w", m, err)
		}

		cfg.merge(&fileCfg)
	}

	return cfg, nil
}

// merge applies other on top of c; backend fields set in other win, probes
// are appended.
func (c *Config) merge(other *Config) {
	if other.Backend != nil {
		if other.Backend.URL != "" {
			c.Backend.URL = other.Backend.URL
		}
		if other.Backend.Timeout != "" {
			c.Backend.Timeout = other.Backend.Timeout
		}
	}

	c.Probes = append(c.Probes, other.Probes...)
}
