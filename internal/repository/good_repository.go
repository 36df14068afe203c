package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// GoodRepo persists goods.
type GoodRepo struct{ DB *sql.DB }

func NewGoodRepo(db *sql.DB) *GoodRepo { return &GoodRepo{DB: db} }

// Create inserts a good and fills in its generated ID.
func (r *GoodRepo) Create(ctx context.Context, g *model.Good) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO goods (user_id, name, price, necessary) VALUES (?,?,?,?)",
		g.UserID, g.Name, g.Price, g.Necessary)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// ListByOwner returns the goods owned by ownerID in insertion order.
func (r *GoodRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Good, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,price,necessary,created_at,updated_at FROM goods WHERE user_id=? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Good{}
	for rows.Next() {
		var g model.Good
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Price, &g.Necessary, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetByID fetches a good regardless of owner.
func (r *GoodRepo) GetByID(ctx context.Context, id uint64) (model.Good, error) {
	var g model.Good
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,price,necessary,created_at,updated_at FROM goods WHERE id=? LIMIT 1",
		id).Scan(&g.ID, &g.UserID, &g.Name, &g.Price, &g.Necessary, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Update writes the mutable fields of an existing good.
func (r *GoodRepo) Update(ctx context.Context, g *model.Good) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE goods SET name=?, price=?, necessary=? WHERE id=?",
		g.Name, g.Price, g.Necessary, g.ID)
	return err
}

// Delete removes a good by id.
func (r *GoodRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM goods WHERE id=?", id)
	return err
}
