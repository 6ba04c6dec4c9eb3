package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type Config struct {
	Port             string
	DatabaseURL      string
	Env              string // either prod or dev, disables the https redirect and few other bits
	SentryDSN        string
	CacheEvictionHrs int // how long cached application/timeline reads live before eviction
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, errors.New("PORT cannot be empty")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return Config{}, errors.New("DATABASE_URL cannot be empty")
	}
	env := os.Getenv("ENV")
	if env == "" {
		return Config{}, errors.New("ENV cannot be empty")
	}
	sentryDSN := os.Getenv("SENTRY")
	cacheEvictionHrs := 12
	if v := os.Getenv("CACHE_EVICTION_HOURS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse CACHE_EVICTION_HOURS %q", v)
		}
		cacheEvictionHrs = parsed
	}
	return Config{
		Port:             port,
		DatabaseURL:      databaseURL,
		Env:              env,
		SentryDSN:        sentryDSN,
		CacheEvictionHrs: cacheEvictionHrs,
	}, nil
}
