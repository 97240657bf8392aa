//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// openDictionaryDB opens a SQLite database holding a dictionary table.
func openDictionaryDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+dataSource+"?mode=ro")
}
