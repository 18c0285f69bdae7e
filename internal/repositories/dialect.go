package repositories

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect describes one supported SQL backend: the database/sql driver to
// open, how placeholders are numbered, and the schema statement for the
// diagrams table.
type Dialect struct {
	Name       string // dialect name as configured.
	Driver     string // database/sql driver name.
	Numbered   bool   // $N placeholders instead of ?.
	SchemaStmt string // CREATE TABLE statement for the diagram store.
}

var dialects = []*Dialect{
	{
		Name:     "sqlite",
		Driver:   "sqlite",
		Numbered: false,
		SchemaStmt: `CREATE TABLE IF NOT EXISTS diagrams (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			share_token TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	},
	{
		Name:     "mysql",
		Driver:   "mysql",
		Numbered: false,
		SchemaStmt: `CREATE TABLE IF NOT EXISTS diagrams (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			snapshot LONGTEXT NOT NULL,
			share_token VARCHAR(36),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	},
	{
		Name:     "postgres",
		Driver:   "postgres",
		Numbered: true,
		SchemaStmt: `CREATE TABLE IF NOT EXISTS diagrams (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			share_token TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
}

// NewDialect returns the dialect registered under the given name. It fails
// if the name is not a valid option; this keeps the validation logic out of
// the command line and config layers.
func NewDialect(name string) (*Dialect, error) {
	for _, d := range dialects {
		if name == d.Name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("repositories: unknown dialect %q", name)
}

// String implements the fmt.Stringer interface.
func (d *Dialect) String() string { return d.Name }

// Rebind rewrites a query written with ? placeholders into the dialect's
// placeholder style. Queries in this package are written once with ? and
// rebound per dialect.
func (d *Dialect) Rebind(query string) string {
	if !d.Numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		fmt.Fprintf(&b, "$%d", n)
	}
	return b.String()
}
