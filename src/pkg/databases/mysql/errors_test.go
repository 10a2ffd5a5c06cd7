package mysql

import (
	"errors"
	"fmt"
	"testing"

	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &driver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	fk := &driver.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}

	assert.True(t, IsDuplicateEntry(dup))
	assert.False(t, IsForeignKeyViolation(dup))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsDuplicateEntry(errors.New("boom")))
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 3306, User: "u", Password: "p", Name: "market"}
	assert.Equal(t, "u:p@tcp(db:3306)/market?parseTime=true&loc=UTC&charset=utf8mb4&clientFoundRows=true", cfg.DSN())
}
