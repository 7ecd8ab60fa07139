package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port           string
	DBPath         string
	SnapshotDir    string
	SnapshotBucket string
	SnapshotPrefix string
	SyncWorkers    int
	LogLevel       string
}

// Load reads the environment, applying defaults for unset variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DBPath:         getenv("DB_PATH", "banksync.db"),
		SnapshotDir:    getenv("SNAPSHOT_DIR", "testdata/snapshots"),
		SnapshotBucket: os.Getenv("SNAPSHOT_BUCKET"),
		SnapshotPrefix: os.Getenv("SNAPSHOT_PREFIX"),
		SyncWorkers:    4,
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if v := os.Getenv("SYNC_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("SYNC_WORKERS must be a positive integer, got %q", v)
		}
		cfg.SyncWorkers = n
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
