package redis

import (
	"fmt"
	"strings"

	"marketplace-service/src/pkg/utils"
)

type CfgRedis struct {
	UseCluster           bool
	EnableTLS            bool
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	RedisClusterNode     string
	RedisClusterPassword string
}

type AppConfig struct {
	UseCluster bool
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	EnableTLS bool
}

// Addr is host:port of the single-node deployment.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type RedisClusterConfig struct {
	Hosts     []string
	Username  string
	Password  string
	EnableTLS bool
}

var (
	AppConfigData          AppConfig
	RedisConfigData        RedisConfig
	RedisClusterConfigData RedisClusterConfig
)

func LoadConfig(config *CfgRedis) {
	AppConfigData = AppConfig{UseCluster: config.UseCluster}

	port := config.RedisPort
	if port == "" {
		port = "6379"
	}
	RedisConfigData = RedisConfig{
		Host:      config.RedisHost,
		Port:      port,
		Password:  config.RedisPassword,
		DB:        utils.ConvertInt(config.RedisDB),
		EnableTLS: config.EnableTLS,
	}

	var hosts []string
	for _, h := range strings.Split(config.RedisClusterNode, ";") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	RedisClusterConfigData = RedisClusterConfig{
		Hosts:     hosts,
		Password:  config.RedisClusterPassword,
		EnableTLS: config.EnableTLS,
	}
}
