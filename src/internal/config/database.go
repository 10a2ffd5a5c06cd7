package config

import (
	"marketplace-service/src/internal/repository"
	"marketplace-service/src/internal/repository/memory"
	"marketplace-service/src/pkg/databases/mysql"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/viper"
)

const StorageMemory = "memory"

func NewDatabase(viper *viper.Viper, log log.Log) mysql.DBInterface {
	db, err := mysql.InitConnection(viper, log)
	if err != nil {
		log.Error("database init", err.Error(), "config", "")
		panic(err)
	}

	return db
}

// NewStore picks the persistence backend from storage.driver. The memory store keeps
// everything in-process and is meant for local runs and demos.
func NewStore(viper *viper.Viper, log log.Log) (repository.Store, func() error) {
	if viper.GetString("storage.driver") == StorageMemory {
		log.Info("database init", "using in-memory store", "config", "")
		return memory.NewStore(), func() error { return nil }
	}
	db := NewDatabase(viper, log)
	return repository.NewSQLStore(db), db.Close
}
