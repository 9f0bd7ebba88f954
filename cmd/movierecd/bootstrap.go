package main

import (
	"os"
	"strings"

	"movierec/internal/config"
	"movierec/internal/serverrun"
)

const (
	envConfigPath = "MOVIEREC_CONFIG"
	envBind       = "MOVIEREC_BIND"
	envLogLevel   = "MOVIEREC_LOG_LEVEL"
)

type lookupFunc func(key string) (string, bool)

func envLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func lookupTrimmed(lookup lookupFunc, key string) string {
	if lookup == nil {
		return ""
	}
	value, _ := lookup(key)
	return strings.TrimSpace(value)
}

// loadConfig reads the config named by MOVIEREC_CONFIG, or the default search path.
func loadConfig(lookup lookupFunc) (*config.Config, error) {
	cfg, _, _, err := config.Load(lookupTrimmed(lookup, envConfigPath))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func serverOptions(lookup lookupFunc) serverrun.Options {
	return serverrun.Options{
		Bind:     lookupTrimmed(lookup, envBind),
		LogLevel: lookupTrimmed(lookup, envLogLevel),
	}
}
