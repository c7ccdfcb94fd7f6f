package repository

import (
	"context"
	"database/sql"
	"errors"
)

// DestinationRepo handles destinations.
type DestinationRepo struct {
	db *sql.DB
}

func NewDestinationRepo(db *sql.DB) *DestinationRepo {
	return &DestinationRepo{db: db}
}

func (r *DestinationRepo) Upsert(ctx context.Context, d Destination) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO destinations(id, name, description)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 description=excluded.description;
	`, d.ID, d.Name, d.Description)
	return err
}

func (r *DestinationRepo) List(ctx context.Context) ([]Destination, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM destinations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Destination
	for rows.Next() {
		var d Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns nil when no destination has the id.
func (r *DestinationRepo) Get(ctx context.Context, id string) (*Destination, error) {
	var d Destination
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description FROM destinations WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
