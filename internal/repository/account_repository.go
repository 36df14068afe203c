package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

// AccountRepo persists payment accounts.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account and fills in its generated ID.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (user_id, name, phone_no, account_no, account_provider) VALUES (?,?,?,?,?)",
		a.UserID, a.Name, a.PhoneNo, a.AccountNo, a.AccountProvider)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// ListByOwner returns the accounts owned by ownerID in insertion order.
func (r *AccountRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,name,phone_no,account_no,account_provider,created_at,updated_at FROM accounts WHERE user_id=? ORDER BY id",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.PhoneNo, &a.AccountNo, &a.AccountProvider, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID fetches an account regardless of owner.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,name,phone_no,account_no,account_provider,created_at,updated_at FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.UserID, &a.Name, &a.PhoneNo, &a.AccountNo, &a.AccountProvider, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Update writes the mutable fields of an existing account.
func (r *AccountRepo) Update(ctx context.Context, a *model.Account) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET name=?, phone_no=?, account_no=?, account_provider=? WHERE id=?",
		a.Name, a.PhoneNo, a.AccountNo, a.AccountProvider, a.ID)
	return err
}

// Delete removes an account by id.
func (r *AccountRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM accounts WHERE id=?", id)
	return err
}
