package commands

import (
	"context"

	"github.com/google/uuid"

	"pitchbook/internal/domain/user"
	"pitchbook/internal/infra"
	"pitchbook/internal/pkg/errs"
	"pitchbook/internal/pkg/jwt"
	"pitchbook/internal/pkg/password"
	"pitchbook/internal/usecase/queries"
	"pitchbook/internal/usecase/shared"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommandService struct {
	users queries.UserReadStore
	jwt   *jwt.Service
	uow   shared.UnitOfWork
}

func NewAuthCommandService(users queries.UserReadStore, jwtService *jwt.Service, uow shared.UnitOfWork) *AuthCommandService {
	return &AuthCommandService{users: users, jwt: jwtService, uow: uow}
}

// Login verifies credentials and issues an access/refresh token pair.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthCommandService) Login(ctx context.Context, rawEmail, rawPassword string) (*TokenPair, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	view, passwordHash, err := s.users.FindByEmail(ctx, email.Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Wrap(err, "failed to load user")
	}

	if err := password.ComparePassword(passwordHash, rawPassword); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrap(err, "malformed user role")
	}

	pair, err := s.issueTokens(view.ID, role)
	if err != nil {
		return nil, err
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, view.ID)
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to record login")
	}

	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair, re-reading the user
// so that deactivation or a role change takes effect immediately.
func (s *AuthCommandService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidToken)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	view, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidToken)
		}
		return nil, errs.Wrap(err, "failed to load user")
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Wrap(err, "malformed user role")
	}

	return s.issueTokens(view.ID, role)
}

func (s *AuthCommandService) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}
	refresh, err := s.jwt.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate refresh token")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
