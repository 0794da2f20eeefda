package database

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string

	// Writer receives gorm's SQL log; nil keeps gorm's default stdout logger.
	Writer io.Writer
}

var ErrUnsupportedDriver = errors.New("unsupported database driver")

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dsn, err := mysqlDSN(o.DSN, o.Username, o.Password)
		if err != nil {
			return nil, err
		}
		dial = mysql.Open(dsn)
	case "sqlite":
		dial = sqlite.Open(o.DSN)
		// one connection: keeps :memory: databases alive and serializes writers
		o.MaxOpenConns, o.MaxIdleConns, o.ConnMaxLifetimeMin = 1, 1, 0
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	gl := logger.Default.LogMode(lvl)
	if o.Writer != nil {
		gl = logger.New(log.New(o.Writer, "", 0), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
		})
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                 gl,
		TranslateError:         true, // driver errors -> gorm.ErrDuplicatedKey / ErrForeignKeyViolated
		SkipDefaultTransaction: true, // store opens its own transactions
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	if o.Driver == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		return db, nil
	}
	return db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: 200}), nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MaskDSN hides the password part of a DSN for logging.
func MaskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at <= 0 {
		return dsn
	}
	head := dsn[:at]
	start := 0
	if i := strings.Index(head, "://"); i >= 0 {
		start = i + 3
	}
	colon := strings.LastIndex(head[start:], ":")
	if colon < 0 {
		return dsn
	}
	return head[:start+colon+1] + "****" + dsn[at:]
}

// mysqlDSN applies credential overrides and the options the store relies on.
func mysqlDSN(dsn, user, pass string) (string, error) {
	cfg, err := mysqldrv.ParseDSN(strings.TrimSpace(dsn))
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if user != "" {
		cfg.User = user
	}
	if pass != "" {
		cfg.Passwd = pass
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}
