package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "GOALBINGO_"

func environ() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// parseEnv overlays cfg with the prefixed variables present in vars.
// Unset variables keep earlier values.
func parseEnv(cfg *Config, vars map[string]string) {
	opts := env.Options{Prefix: envPrefix, Environment: vars}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		panic(err)
	}
}
