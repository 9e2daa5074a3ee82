package kvstore

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Runs only when a disposable MySQL database is provided.
func TestSQLStoreContract(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	store, err := NewSQLStore(db)
	require.NoError(t, err)

	runStoreContract(t, func(t *testing.T) Store {
		require.NoError(t, db.Exec("DELETE FROM kv_records").Error)
		return store
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "orders!_x:", escapeLike("orders_x:"))
	assert.Equal(t, "a!%b!!c", escapeLike("a%b!c"))
	assert.Equal(t, "listings:by-seller:s1:", escapeLike("listings:by-seller:s1:"))
}

func TestSQLKeyColumnIsBinaryCollated(t *testing.T) {
	field, ok := reflect.TypeOf(sqlRecord{}).FieldByName("Key")
	require.True(t, ok)
	assert.Contains(t, field.Tag.Get("gorm"), "COLLATE utf8mb4_bin")
}
