package readstore

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
	"pitchbook/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(q db.DBTX) *UserReadStore {
	return &UserReadStore{db: q}
}

const userByIDQuery = `
SELECT id, email, full_name, role, is_active
FROM users
WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, userByIDQuery, id).Scan(
		&view.ID, &view.Email, &view.FullName, &view.Role, &view.IsActive,
	)
	if err != nil {
		return nil, db.WrapError(err)
	}
	return &view, nil
}

const userByEmailQuery = `
SELECT id, email, full_name, role, is_active, password_hash
FROM users
WHERE email = $1`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		passwordHash string
	)
	err := r.db.QueryRow(ctx, userByEmailQuery, email).Scan(
		&view.ID, &view.Email, &view.FullName, &view.Role, &view.IsActive, &passwordHash,
	)
	if err != nil {
		return nil, "", db.WrapError(err)
	}
	return &view, passwordHash, nil
}
