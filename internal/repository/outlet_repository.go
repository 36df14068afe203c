package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// OutletRepo persists outlets. All list queries are scoped to an owner so a
// user can never observe another user's rows.
type OutletRepo struct{ DB *sql.DB }

func NewOutletRepo(db *sql.DB) *OutletRepo { return &OutletRepo{DB: db} }

// Create inserts an outlet and fills in its generated ID.
func (r *OutletRepo) Create(ctx context.Context, o *model.Outlet) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO outlets (user_id, name, postal_address, location) VALUES (?,?,?,?)",
		o.UserID, o.Name, o.PostalAddress, o.Location)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// ListByOwner returns the outlets owned by ownerID in insertion order.
func (r *OutletRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Outlet, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,postal_address,location,created_at,updated_at FROM outlets WHERE user_id=? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Outlet{}
	for rows.Next() {
		var o model.Outlet
		if err := rows.Scan(&o.ID, &o.UserID, &o.Name, &o.PostalAddress, &o.Location, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByID fetches an outlet regardless of owner. Ownership is checked by the
// handler after the existence check so 404 takes precedence over 403.
func (r *OutletRepo) GetByID(ctx context.Context, id uint64) (model.Outlet, error) {
	var o model.Outlet
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,postal_address,location,created_at,updated_at FROM outlets WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.UserID, &o.Name, &o.PostalAddress, &o.Location, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// Update writes the mutable fields of an existing outlet.
func (r *OutletRepo) Update(ctx context.Context, o *model.Outlet) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE outlets SET name=?, postal_address=?, location=? WHERE id=?",
		o.Name, o.PostalAddress, o.Location, o.ID)
	return err
}

// Delete removes an outlet by id.
func (r *OutletRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM outlets WHERE id=?", id)
	return err
}
