package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PointRepo handles itinerary points and their selected offers.
type PointRepo struct {
	db *sql.DB
}

func NewPointRepo(db *sql.DB) *PointRepo { return &PointRepo{db: db} }

func (r *PointRepo) Insert(ctx context.Context, p TripPoint) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO points(id, point_type, destination_id, date_from, date_to, base_price, is_favorite, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
		`, p.ID, p.Type, p.DestinationID, p.DateFrom.UTC(), p.DateTo.UTC(), p.BasePrice, p.IsFavorite)
		if err != nil {
			return err
		}
		return writeOffers(ctx, tx, p.ID, p.OfferIDs)
	})
}

// Update replaces every column and the offer selection of an existing point.
// It returns sql.ErrNoRows when the id is unknown.
func (r *PointRepo) Update(ctx context.Context, p TripPoint) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
		UPDATE points SET point_type = ?, destination_id = ?, date_from = ?, date_to = ?,
		 base_price = ?, is_favorite = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
			p.Type, p.DestinationID, p.DateFrom.UTC(), p.DateTo.UTC(), p.BasePrice, p.IsFavorite, p.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return sql.ErrNoRows
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM point_offers WHERE point_id = ?`, p.ID); err != nil {
			return err
		}
		return writeOffers(ctx, tx, p.ID, p.OfferIDs)
	})
}

// Delete returns sql.ErrNoRows when the id is unknown.
func (r *PointRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM points WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PointRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM points`).Scan(&n)
	return n, err
}

// List returns every point ordered by start time.
func (r *PointRepo) List(ctx context.Context) ([]TripPoint, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, point_type, destination_id, date_from, date_to, base_price, is_favorite FROM points ORDER BY date_from, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TripPoint
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		ids, err := r.fetchOffers(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].OfferIDs = ids
	}
	return out, nil
}

// Get returns nil when no point has the id.
func (r *PointRepo) Get(ctx context.Context, id string) (*TripPoint, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, point_type, destination_id, date_from, date_to, base_price, is_favorite FROM points WHERE id = ?`, id)
	p, err := scanPoint(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ids, err := r.fetchOffers(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.OfferIDs = ids
	return &p, nil
}

func (r *PointRepo) fetchOffers(ctx context.Context, pointID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT offer_id FROM point_offers WHERE point_id = ? ORDER BY position`, pointID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PointRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeOffers(ctx context.Context, tx *sql.Tx, pointID string, offerIDs []string) error {
	for i, id := range offerIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO point_offers(point_id, offer_id, position) VALUES(?, ?, ?)`, pointID, id, i); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPoint(row scanner) (TripPoint, error) {
	var p TripPoint
	var from, to time.Time
	if err := row.Scan(&p.ID, &p.Type, &p.DestinationID, &from, &to, &p.BasePrice, &p.IsFavorite); err != nil {
		return TripPoint{}, err
	}
	p.DateFrom = from.UTC()
	p.DateTo = to.UTC()
	return p, nil
}
