package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Open connects to the configured database, verifies the connection and
// creates the diagrams table when it is missing. The sqlite dialect with a
// file or :memory: DSN is the default deployment; mysql and postgres serve
// shared installations.
func Open(dialect, dsn string) (*sql.DB, *Dialect, error) {
	d, err := NewDialect(dialect)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", d.Name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping %s database: %w", d.Name, err)
	}

	if _, err := db.ExecContext(ctx, d.SchemaStmt); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create diagrams table: %w", err)
	}
	return db, d, nil
}
