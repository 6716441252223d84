package db

import (
	"database/sql"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Schema is what the bootstrap needs: probing information_schema and running DDL.
type Schema interface {
	QueryRower
	Execer
}

// NullIfEmpty stores optional text columns as NULL.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const tableLookup = `SELECT 1 FROM information_schema.tables
	WHERE table_schema = DATABASE() AND table_name = ? LIMIT 1`

const columnLookup = `SELECT 1 FROM information_schema.columns
	WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ? LIMIT 1`

// HasTable reports whether table exists in the current schema. Any error counts as absent.
func HasTable(q QueryRower, table string) bool {
	return rowExists(q, tableLookup, table)
}

// HasColumn reports whether table.column exists. Any error counts as absent.
func HasColumn(q QueryRower, table, column string) bool {
	return rowExists(q, columnLookup, table, column)
}

func rowExists(q QueryRower, query string, args ...any) bool {
	var one int
	err := q.QueryRow(query, args...).Scan(&one)
	if err != nil {
		return false
	}
	return one == 1
}
