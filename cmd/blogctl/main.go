// Command blogctl runs operator tasks against the blog database:
// migrate, seed, check and useradd.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-blog/internal/app"
	"go-gin-blog/internal/core/config"
	"go-gin-blog/internal/core/database"
	"go-gin-blog/internal/core/logger"
)

const usage = `usage: blogctl <command> [flags]

commands:
  migrate                  apply the schema (db.migrations: gorm | sql)
  seed                     wipe and load demo users and articles
  check                    ping the database and list tables and columns
  useradd -email -password [-name] [-role user|admin]
`

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "blogctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := app.ParseCommand(args)
	if cmd == app.CommandHelp {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case app.CommandMigrate:
		db, err := app.OpenDB(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB(db, log)
		if err := app.Migrate(cfg, db); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("driver", cfg.DB.Driver), zap.String("mode", cfg.DB.Migrations))
		return nil

	case app.CommandCheck:
		db, err := app.OpenDB(cfg, log)
		if err != nil {
			return err
		}
		defer closeDB(db, log)
		return app.Check(ctx, db, os.Stdout)

	case app.CommandSeed:
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		rep, err := app.Seed(ctx, a)
		if err != nil {
			return err
		}
		for _, u := range rep.Users {
			fmt.Printf("user    %-22s role=%-5s password=%s\n", u.Email, u.Role, app.SeedPassword)
		}
		for _, art := range rep.Articles {
			fmt.Printf("article %-40s published=%t\n", art.Slug, art.Published)
		}
		return nil

	case app.CommandUserAdd:
		fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
		email := fs.String("email", "", "login email (required)")
		password := fs.String("password", "", "password, 8-128 characters (required)")
		name := fs.String("name", "", "display name, defaults to the email local part")
		role := fs.String("role", "user", "user or admin")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		u, err := a.Auth.CreateUser(ctx, *email, *password, *name, *role)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s) id=%s\n", u.Email, u.Role, u.ID)
		return nil
	}
	return nil
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("close database", zap.Error(err))
	}
}
