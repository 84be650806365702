package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

var (
	// ErrReferenced is returned when a row cannot be deleted because another row points at it.
	ErrReferenced = errors.New("row is referenced by another row")
	// ErrMissingReference is returned when a foreign key points at a row that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
)

const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrRowIsReferenced  = 1451
	mysqlErrNoReferencedRow  = 1452
	mysqlErrRowIsReferenced2 = 1217
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func isDuplicateEntryError(err error) bool {
	return hasMySQLErrorNumber(err, mysqlErrDuplicateEntry)
}

func isRowReferencedError(err error) bool {
	return hasMySQLErrorNumber(err, mysqlErrRowIsReferenced, mysqlErrRowIsReferenced2)
}

func isMissingReferenceError(err error) bool {
	return hasMySQLErrorNumber(err, mysqlErrNoReferencedRow)
}

func hasMySQLErrorNumber(err error, numbers ...uint16) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	for _, n := range numbers {
		if mysqlErr.Number == n {
			return true
		}
	}
	return false
}

// deleteByID runs a single-row delete and translates foreign key and
// missing-row outcomes into the given sentinels.
func deleteByID(ctx context.Context, db DBTX, query string, id uint64, notFound error) error {
	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		if isRowReferencedError(err) {
			return ErrReferenced
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conditions, " AND ")
}
