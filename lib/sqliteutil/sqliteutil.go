package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func driverFor(path string) string {
	if strings.HasPrefix(path, "libsql://") ||
		strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") {
		return "libsql"
	}
	return "sqlite"
}

// opens a sqlite (or remote libsql) database and applies the embedded
// schema. foreign key enforcement is switched on explicitly since
// sqlite leaves it off per-connection by default and the room table
// relies on ON DELETE CASCADE.
func OpenDB(schema, path string) (*sql.DB, error) {
	driver := driverFor(path)
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// a single pooled connection keeps pragmas effective and keeps
		// ":memory:" databases from silently splitting per connection
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}

	return db, nil
}
