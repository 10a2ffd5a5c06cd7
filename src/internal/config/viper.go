package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// NewViper reads config.yaml when present and lets environment variables override any
// key, e.g. DATABASE_HOST for database.host.
func NewViper() *viper.Viper {
	config := viper.New()
	config.SetConfigName("config")
	config.SetConfigType("yaml")
	config.AddConfigPath(".")
	config.AddConfigPath("./config")
	config.AddConfigPath("/etc/marketplace")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	setDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}
	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("log.level", "DEBUG")
	config.SetDefault("app.name", "MARKETPLACE_SERVICE")
	config.SetDefault("web.port", 8080)
	config.SetDefault("web.prefix", "/api")
	config.SetDefault("web.cors_origins", "*")
	config.SetDefault("web.body_limit", 20*1024*1024)
	config.SetDefault("jwt.issuer", "marketplace-service")
	config.SetDefault("jwt.access_ttl", "15m")
	config.SetDefault("jwt.refresh_ttl", "168h")
	config.SetDefault("storage.driver", "mysql")
	config.SetDefault("database.port", 3306)
	config.SetDefault("database.pool.max", 20)
	config.SetDefault("database.pool.idle", 5)
	config.SetDefault("database.pool.lifetime", 300)
	config.SetDefault("redis.host", "127.0.0.1")
	config.SetDefault("redis.port", "6379")
	config.SetDefault("kafka.producer.enabled", false)
	config.SetDefault("asynq.queue", "default")
	config.SetDefault("asynq.concurrency", 5)
	config.SetDefault("minio.enabled", false)
	config.SetDefault("minio.bucket", "marketplace")
	config.SetDefault("stripe.enabled", false)
	config.SetDefault("stripe.currency", "usd")
	config.SetDefault("mail.port", 587)
	config.SetDefault("metrics.enabled", true)
}
