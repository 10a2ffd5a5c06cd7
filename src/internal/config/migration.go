package config

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/pkg/databases/mysql"
	"marketplace-service/src/pkg/log"

	"github.com/spf13/viper"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Migrate creates or updates the relational schema from the entity definitions.
func Migrate(viper *viper.Viper, log log.Log) error {
	db, err := gorm.Open(gormMysql.Open(mysql.ConfigFromViper(viper).DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(entity.Models()...); err != nil {
		return err
	}
	log.Info("migrate", "schema is up to date", "Migrate", "")
	return nil
}
