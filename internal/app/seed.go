package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
	"go-gin-blog/internal/service"
)

// SeedPassword is the password of every seeded user.
const SeedPassword = "password123"

type seedArticle struct {
	title     string
	content   string
	published bool
	day       int
}

var seedArticles = []seedArticle{
	{"Getting Started with Go", "# Getting Started with Go\n\nInstall the toolchain, run `go mod init`, and write your first `main` package.\n\n```go\npackage main\n\nfunc main() { println(\"hello\") }\n```\n", true, 1},
	{"Building HTTP Services with Gin", "# Building HTTP Services with Gin\n\nGin keeps routing fast and middleware composable.\n\n- route groups\n- binding and validation\n- recovery\n", true, 2},
	{"Understanding GORM", "# Understanding GORM\n\nModels, migrations and transactions in one place.\n\n| feature | status |\n|---|---|\n| migrations | yes |\n| hooks | yes |\n", true, 3},
	{"Draft: PostgreSQL Best Practices", "# PostgreSQL Best Practices\n\nIndexes, constraints and connection pools. Work in progress.\n", false, 4},
	{"Draft: Profiling Go Programs", "# Profiling Go Programs\n\npprof, trace and benchmarks. Work in progress.\n", false, 5},
}

type SeedReport struct {
	Users    []*domain.User
	Articles []*domain.Article
}

// Seed wipes articles and users, then creates an admin, an editor and five
// articles authored by the admin. Articles go through the article service so
// slugs and validation match what the API would produce.
func Seed(ctx context.Context, a *App) (*SeedReport, error) {
	if err := a.Articles.Purge(ctx); err != nil {
		return nil, fmt.Errorf("clear articles: %w", err)
	}
	if err := a.Users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear users: %w", err)
	}

	rep := &SeedReport{}
	for _, u := range []struct{ email, name, role string }{
		{"admin@example.com", "Admin", domain.RoleAdmin},
		{"editor@example.com", "Editor", domain.RoleUser},
	} {
		created, err := a.Auth.CreateUser(ctx, u.email, SeedPassword, u.name, u.role)
		if err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.email, err)
		}
		rep.Users = append(rep.Users, created)
	}

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, sa := range seedArticles {
		at := base.AddDate(0, 0, sa.day-1)
		svc := service.NewArticleService(
			a.Articles,
			service.NewAuthorResolver(a.Users),
			service.WithLogger(a.Log.Named("seed")),
			service.WithClock(func() time.Time { return at }),
		)
		published := sa.published
		art, err := svc.Create(ctx, domain.NewArticle{
			Title:       sa.title,
			Content:     sa.content,
			Published:   &published,
			AuthorEmail: rep.Users[0].Email,
		})
		if err != nil {
			return nil, fmt.Errorf("create article %q: %w", sa.title, err)
		}
		rep.Articles = append(rep.Articles, art)
	}
	if c, ok := a.Service.(*service.CachedArticles); ok {
		c.Invalidate(ctx)
	}
	a.Log.Info("seed done", zap.Int("users", len(rep.Users)), zap.Int("articles", len(rep.Articles)))
	return rep, nil
}

// Check pings the database and prints every table with its columns.
func Check(ctx context.Context, db *gorm.DB, w io.Writer) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	fmt.Fprintf(w, "connected: %s\n", db.Dialector.Name())

	m := db.WithContext(ctx).Migrator()
	tables, err := m.GetTables()
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	for _, t := range tables {
		cols, err := m.ColumnTypes(t)
		if err != nil {
			return fmt.Errorf("columns of %s: %w", t, err)
		}
		fmt.Fprintf(w, "table %s\n", t)
		for _, c := range cols {
			nullable, _ := c.Nullable()
			fmt.Fprintf(w, "  - %s: %s (nullable: %t)\n", c.Name(), c.DatabaseTypeName(), nullable)
		}
	}
	return nil
}
