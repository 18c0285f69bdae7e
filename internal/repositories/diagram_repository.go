package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"classforge"
	"classforge/internal/models"
)

// DiagramRepository persists diagrams through database/sql. All queries are
// written with ? placeholders and rebound per dialect.
type DiagramRepository struct {
	db      *sql.DB
	dialect *Dialect
}

func NewDiagramRepository(db *sql.DB, dialect *Dialect) *DiagramRepository {
	return &DiagramRepository{db: db, dialect: dialect}
}

const diagramColumns = "id, name, snapshot, share_token, created_at, updated_at"

func (r *DiagramRepository) Create(ctx context.Context, d *models.Diagram) error {
	d.Prepare()

	query := r.dialect.Rebind(`
		INSERT INTO diagrams (` + diagramColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		d.ID.String(),
		d.Name,
		string(d.Snapshot),
		tokenValue(d.ShareToken),
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert diagram: %w", err)
	}
	return nil
}

func (r *DiagramRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Diagram, error) {
	query := r.dialect.Rebind(`
		SELECT ` + diagramColumns + ` FROM diagrams WHERE id = ?
	`)
	d, err := scanDiagram(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, classforge.NewNotFoundErrorWithID("diagram", id)
	}
	return d, err
}

func (r *DiagramRepository) GetByShareToken(ctx context.Context, token uuid.UUID) (*models.Diagram, error) {
	query := r.dialect.Rebind(`
		SELECT ` + diagramColumns + ` FROM diagrams WHERE share_token = ?
	`)
	d, err := scanDiagram(r.db.QueryRowContext(ctx, query, token.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, classforge.NewNotFoundError("shared diagram")
	}
	return d, err
}

func (r *DiagramRepository) List(ctx context.Context) ([]models.Diagram, error) {
	query := `
		SELECT ` + diagramColumns + ` FROM diagrams
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	var diagrams []models.Diagram
	for rows.Next() {
		d, err := scanDiagram(rows)
		if err != nil {
			return nil, err
		}
		diagrams = append(diagrams, *d)
	}
	return diagrams, rows.Err()
}

func (r *DiagramRepository) Update(ctx context.Context, d *models.Diagram) error {
	d.Prepare()

	query := r.dialect.Rebind(`
		UPDATE diagrams SET name = ?, snapshot = ?, updated_at = ?
		WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query,
		d.Name,
		string(d.Snapshot),
		d.UpdatedAt,
		d.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update diagram: %w", err)
	}
	return affected(result, d.ID)
}

func (r *DiagramRepository) SetShareToken(ctx context.Context, id uuid.UUID, token uuid.UUID) error {
	query := r.dialect.Rebind(`
		UPDATE diagrams SET share_token = ? WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, token.String(), id.String())
	if err != nil {
		return fmt.Errorf("set share token: %w", err)
	}
	return affected(result, id)
}

func (r *DiagramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.dialect.Rebind(`DELETE FROM diagrams WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	return affected(result, id)
}

// affected maps a zero-row write to the shared not-found error.
func affected(result sql.Result, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return classforge.NewNotFoundErrorWithID("diagram", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDiagram(row scanner) (*models.Diagram, error) {
	var (
		d     models.Diagram
		id    string
		snap  string
		token sql.NullString
	)
	err := row.Scan(&id, &d.Name, &snap, &token, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse diagram id %q: %w", id, err)
	}
	d.Snapshot = []byte(snap)
	if token.Valid {
		t, err := uuid.Parse(token.String)
		if err != nil {
			return nil, fmt.Errorf("parse share token %q: %w", token.String, err)
		}
		d.ShareToken = &t
	}
	return &d, nil
}

func tokenValue(token *uuid.UUID) any {
	if token == nil {
		return nil
	}
	return token.String()
}
