package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-service/src/pkg/log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type DBInterface interface {
	GetDB() (*sqlx.DB, error)
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	Close() error
}

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type mysqlDB struct {
	db  *sqlx.DB
	log log.Log
}

// DSN builds the go-sql-driver connection string. clientFoundRows makes conditional
// updates report matched rows, not changed rows.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC&charset=utf8mb4&clientFoundRows=true",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		User:            v.GetString("database.username"),
		Password:        v.GetString("database.password"),
		Name:            v.GetString("database.name"),
		MaxOpenConns:    v.GetInt("database.pool.max"),
		MaxIdleConns:    v.GetInt("database.pool.idle"),
		ConnMaxLifetime: time.Duration(v.GetInt("database.pool.lifetime")) * time.Second,
	}
}

func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	cfg := ConfigFromViper(v)
	db, err := sqlx.Connect("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	logger.Info("mysql", fmt.Sprintf("connected to %s:%d/%s", cfg.Host, cfg.Port, cfg.Name), "InitConnection", "")
	return &mysqlDB{db: db, log: logger}, nil
}

func (m *mysqlDB) GetDB() (*sqlx.DB, error) {
	if m == nil || m.db == nil {
		return nil, errors.New("mysql connection is not initialised")
	}
	return m.db, nil
}

// WithTransaction commits when fn returns nil and rolls back otherwise.
func (m *mysqlDB) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	db, err := m.GetDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				m.log.Error("mysql", rbErr.Error(), "WithTransaction-rollback", "")
			}
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (m *mysqlDB) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}
