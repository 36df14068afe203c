package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// ServiceRepo persists services.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// Create inserts a service and fills in its generated ID.
func (r *ServiceRepo) Create(ctx context.Context, s *model.Service) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO services (user_id, name, price) VALUES (?,?,?)",
		s.UserID, s.Name, s.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListByOwner returns the services owned by ownerID in insertion order.
func (r *ServiceRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,price,created_at,updated_at FROM services WHERE user_id=? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Service{}
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a service regardless of owner.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	var s model.Service
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,price,created_at,updated_at FROM services WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.UserID, &s.Name, &s.Price, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Update writes the mutable fields of an existing service.
func (r *ServiceRepo) Update(ctx context.Context, s *model.Service) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE services SET name=?, price=? WHERE id=?",
		s.Name, s.Price, s.ID)
	return err
}

// Delete removes a service by id.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	return err
}
