// Package repotest builds throwaway in-memory databases for tests.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-blog/internal/core/database"
	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/feature/article"
	"go-gin-blog/internal/feature/user"
	"go-gin-blog/pkg/utils"
)

// NewDB opens a migrated in-memory sqlite database closed at test cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, "sqlite", database.MigrateGorm, "", &user.UserModel{}, &article.ArticleModel{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// AddUser inserts a user with a fixed password hash and returns it.
func AddUser(t testing.TB, db *gorm.DB, email, role string) *domain.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &user.UserModel{
		ID:           utils.NewID(),
		Email:        email,
		Name:         email,
		PasswordHash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi5BWEqYF8uYHYsFZwYQBdT5Y5NQ1Pe",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u.ToDomain()
}
