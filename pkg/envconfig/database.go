package envconfig

import (
	"time"

	"github.com/ayushi-gajendra/restaurant-insights/pkg/database"
)

// ApplyDatabaseEnv overlays DB_* environment variables onto base.
func ApplyDatabaseEnv(base database.Config) database.Config {
	config := base

	if driver := GetEnv("DB_DRIVER", ""); driver != "" {
		config.Driver = driver
	}

	if host := GetEnv("DB_HOST", ""); host != "" {
		config.Host = host
	}

	config.Port = GetEnvInt("DB_PORT", config.Port)

	if user := GetEnv("DB_USER", ""); user != "" {
		config.User = user
	}

	if password := GetEnv("DB_PASSWORD", ""); password != "" {
		config.Password = password
	}

	if dbname := GetEnv("DB_NAME", ""); dbname != "" {
		config.DBName = dbname
	}

	if sslmode := GetEnv("DB_SSL_MODE", ""); sslmode != "" {
		config.SSLMode = sslmode
	}

	if path := GetEnv("DB_PATH", ""); path != "" {
		config.Path = path
	}

	// Connection pool settings
	if maxOpenConns := GetEnvInt("DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		config.MaxOpenConns = maxOpenConns
	}

	if maxIdleConns := GetEnvInt("DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		config.MaxIdleConns = maxIdleConns
	}

	if connMaxLifetimeStr := GetEnv("DB_CONN_MAX_LIFETIME", ""); connMaxLifetimeStr != "" {
		if connMaxLifetime, err := time.ParseDuration(connMaxLifetimeStr); err == nil {
			config.ConnMaxLifetime = connMaxLifetime
		}
	}

	if connMaxIdleTimeStr := GetEnv("DB_CONN_MAX_IDLE_TIME", ""); connMaxIdleTimeStr != "" {
		if connMaxIdleTime, err := time.ParseDuration(connMaxIdleTimeStr); err == nil {
			config.ConnMaxIdleTime = connMaxIdleTime
		}
	}

	return config
}
