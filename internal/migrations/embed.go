// Package migrations provides embedded SQL migration files.
package migrations

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_initial.sql
var InitialSQL string

// all lists migrations in the order they are applied.
var all = []struct {
	name string
	sql  string
}{
	{"001_initial", InitialSQL},
}

// Apply runs every migration. Statements are idempotent, so Apply is safe to
// call on each startup.
func Apply(db *sql.DB) error {
	for _, m := range all {
		if _, err := db.Exec(m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
	}
	return nil
}
