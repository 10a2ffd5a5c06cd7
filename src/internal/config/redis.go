package config

import (
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/internal/repository/memory"
	"marketplace-service/src/pkg/log"
	redisModule "marketplace-service/src/pkg/redis"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func LoadRedisConfig(viper *viper.Viper) error {
	CfgRedis := &redisModule.CfgRedis{
		UseCluster:           viper.GetBool("redis.use_cluster"),
		EnableTLS:            viper.GetBool("redis.tls"),
		RedisHost:            viper.GetString("redis.host"),
		RedisPort:            viper.GetString("redis.port"),
		RedisPassword:        viper.GetString("redis.password"),
		RedisDB:              viper.GetInt("redis.db"),
		RedisClusterNode:     viper.GetString("redis.cluster.node"),
		RedisClusterPassword: viper.GetString("redis.cluster.password"),
	}
	redisModule.LoadConfig(CfgRedis)
	return redisModule.InitConnection()
}

func NewRedis() redis.UniversalClient {
	return redisModule.GetClient()
}

// NewRefreshTokenRepository keeps refresh sessions in redis, or in process when the
// memory store is selected.
func NewRefreshTokenRepository(viper *viper.Viper, log log.Log) repository.RefreshTokenRepository {
	if viper.GetString("storage.driver") == StorageMemory {
		return memory.NewRefreshTokens()
	}
	if err := LoadRedisConfig(viper); err != nil {
		log.Error("redis init", err.Error(), "config", "")
		panic(err)
	}
	return repository.NewRefreshTokenRepository(NewRedis())
}
