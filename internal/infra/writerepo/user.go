package writerepo

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/infra/db"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(q db.DBTX) *UserRepository {
	return &UserRepository{db: q}
}

const updateLastLoginQuery = `
UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, updateLastLoginQuery, userID)
	if err != nil {
		return db.WrapError(err)
	}
	return nil
}
