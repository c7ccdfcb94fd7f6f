package repository

import (
	"context"
	"database/sql"
)

// OfferRepo handles the offer catalog.
type OfferRepo struct {
	db *sql.DB
}

func NewOfferRepo(db *sql.DB) *OfferRepo {
	return &OfferRepo{db: db}
}

func (r *OfferRepo) Upsert(ctx context.Context, o Offer) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO offers(id, point_type, title, price)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 point_type=excluded.point_type,
	 title=excluded.title,
	 price=excluded.price;
	`, o.ID, o.Type, o.Title, o.Price)
	return err
}

func (r *OfferRepo) List(ctx context.Context) ([]Offer, error) {
	return r.query(ctx, `SELECT id, point_type, title, price FROM offers ORDER BY point_type, price, title`)
}

func (r *OfferRepo) ListByType(ctx context.Context, pointType string) ([]Offer, error) {
	return r.query(ctx, `SELECT id, point_type, title, price FROM offers WHERE point_type = ? ORDER BY price, title`, pointType)
}

func (r *OfferRepo) query(ctx context.Context, q string, args ...interface{}) ([]Offer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Offer
	for rows.Next() {
		var o Offer
		if err := rows.Scan(&o.ID, &o.Type, &o.Title, &o.Price); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
