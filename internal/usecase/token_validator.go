package usecase

import (
	"context"
	"errors"

	"pitchbook/internal/domain/user"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/jwt"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

var ErrUnauthorized = errors.New("unauthorized")

// TokenValidator resolves a bearer token into an Actor. The role comes from
// the database, not the token, so role changes apply without re-login.
type TokenValidator struct {
	jwt   *jwt.Service
	users queries.UserReadStore
}

func NewTokenValidator(jwtService *jwt.Service, users queries.UserReadStore) *TokenValidator {
	return &TokenValidator{jwt: jwtService, users: users}
}

func (v *TokenValidator) Validate(ctx context.Context, token string) (shared.Actor, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return shared.Actor{}, ErrUnauthorized
	}
	if claims.TokenType != jwt.TokenTypeAccess {
		return shared.Actor{}, ErrUnauthorized
	}

	view, err := v.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return shared.Actor{}, ErrUnauthorized
		}
		return shared.Actor{}, err
	}
	if !view.IsActive {
		return shared.Actor{}, ErrUnauthorized
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return shared.Actor{}, ErrUnauthorized
	}

	return shared.Actor{ID: view.ID, Role: role}, nil
}
