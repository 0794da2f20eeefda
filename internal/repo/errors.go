package repo

import (
	"errors"
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"go-gin-blog/internal/domain"
)

// translate maps driver and gorm errors onto the store contract sentinels.
// Anything unrecognised passes through untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNoRecord
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", domain.ErrBadReference, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", domain.ErrBadReference, pgErr.ConstraintName)
		}
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, myErr.Message)
		case 1452:
			return fmt.Errorf("%w: %s", domain.ErrBadReference, myErr.Message)
		}
	}

	// drivers without error translation
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "duplicate entry"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicate, err)
	case strings.Contains(msg, "foreign key constraint"):
		return fmt.Errorf("%w: %v", domain.ErrBadReference, err)
	}
	return err
}
