//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// openDictionaryDB opens a SQLite database holding a dictionary table.
func openDictionaryDB(dataSource string) (*sql.DB, error) {
	return sql.Open("sqlite", "file:"+dataSource+"?mode=ro")
}
