package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// envConfig mirrors Config with environment lookup tags. Variables that are
// not set leave the prefilled values untouched, so the environment acts as
// an overlay between the JSON file and command-line flags.
type envConfig struct {
	EndpointAddr          string   `env:"CORTEX_ADDRESS"`
	DatabaseDSN           string   `env:"CORTEX_DATABASE_DSN"`
	SecretKey             string   `env:"CORTEX_SECRET_KEY"`
	TokenValidityDuration string   `env:"CORTEX_TOKEN_VALIDITY"`
	CORSAllowOrigins      []string `env:"CORTEX_CORS_ORIGINS"`
	BodyLimit             string   `env:"CORTEX_BODY_LIMIT"`
}

func parseEnv(config *Config) {
	c := &envConfig{
		EndpointAddr:     config.EndpointAddr,
		DatabaseDSN:      config.DatabaseDSN,
		SecretKey:        config.SecretKey,
		CORSAllowOrigins: config.CORSAllowOrigins,
		BodyLimit:        config.BodyLimit,
	}

	if err := envconfig.Process(context.Background(), c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.CORSAllowOrigins = c.CORSAllowOrigins
	config.BodyLimit = c.BodyLimit

	if c.TokenValidityDuration != "" {
		d, err := parseDurationString(c.TokenValidityDuration)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
}
