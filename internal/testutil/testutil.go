// Package testutil opens throwaway databases and inserts fixtures for tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"localinfo/internal/adapters/database"
	"localinfo/internal/core/category"
	"localinfo/internal/core/post"
	"localinfo/internal/core/user"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, nickname, neighborhood string) *user.User {
	t.Helper()
	u, err := user.New("name-"+nickname, nickname, nickname+"@mail.com", "hashed", []string{"GENERAL"},
		user.Region{Neighborhood: neighborhood, District: "district", City: "city"})
	require.NoError(t, err)
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *category.Category {
	t.Helper()
	c := &category.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreatePost(t *testing.T, db *gorm.DB, author *user.User, c *category.Category, contents string) *post.Post {
	t.Helper()
	p := post.New(contents, c, author, nil)
	require.NoError(t, db.Omit("Category", "User").Create(p).Error)
	return p
}
