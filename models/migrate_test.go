package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMigrate_TableNames(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable("franquias"))
	assert.True(t, db.Migrator().HasTable("placas"))
	assert.False(t, db.Migrator().HasTable("franquia"))
	assert.True(t, db.Migrator().HasIndex(&Franquia{}, "CNPJ"))
	assert.True(t, db.Migrator().HasIndex(&Franquia{}, "Email"))
	assert.True(t, db.Migrator().HasColumn(&Placa{}, "franquia_id"))
}
