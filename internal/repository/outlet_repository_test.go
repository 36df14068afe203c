package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/duka-bookkeeping/internal/model"
)

var outletColumns = []string{"id", "user_id", "name", "postal_address", "location", "created_at", "updated_at"}

func TestOutletRepoCreateSetsID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOutletRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outlets (user_id, name, postal_address, location) VALUES (?,?,?,?)")).
		WithArgs(uint64(1), "Shop", "1 Main St", "Nairobi").
		WillReturnResult(sqlmock.NewResult(5, 1))

	o := model.Outlet{UserID: 1, Name: "Shop", PostalAddress: "1 Main St", Location: "Nairobi"}
	require.NoError(t, repo.Create(context.Background(), &o))
	assert.Equal(t, uint64(5), o.ID)
}

func TestOutletRepoListByOwnerScopesRows(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOutletRepo(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,user_id,name,postal_address,location,created_at,updated_at FROM outlets WHERE user_id=? ORDER BY id")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(outletColumns).
			AddRow(1, 1, "Shop", "1 Main St", "Nairobi", now, now).
			AddRow(4, 1, "Branch", "2 Side St", "Mombasa", now, now))

	items, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Shop", items[0].Name)
	assert.Equal(t, "Branch", items[1].Name)
}

func TestOutletRepoListByOwnerEmptyIsNotNil(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOutletRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,user_id,name,postal_address,location,created_at,updated_at FROM outlets WHERE user_id=? ORDER BY id")).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(outletColumns))

	items, err := repo.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, items) // serializes as [] rather than null
	assert.Empty(t, items)
}

func TestOutletRepoGetByIDMissing(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOutletRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,user_id,name,postal_address,location,created_at,updated_at FROM outlets WHERE id=? LIMIT 1")).
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOutletRepoUpdateAndDelete(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewOutletRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outlets SET name=?, postal_address=?, location=? WHERE id=?")).
		WithArgs("Shop", "1 Main St", "Nakuru", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outlets WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	o := model.Outlet{ID: 5, Name: "Shop", PostalAddress: "1 Main St", Location: "Nakuru"}
	require.NoError(t, repo.Update(context.Background(), &o))
	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}
