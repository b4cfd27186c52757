//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pitchbook/internal/pkg/jwt"
	"pitchbook/internal/pkg/password"
	"pitchbook/internal/usecase/commands"
	"pitchbook/internal/usecase/queries"
	queriesmock "pitchbook/tests/mock/queries"
)

func newAuthService(t *testing.T) (*commands.AuthCommandService, *queriesmock.MockUserReadStore, *jwt.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := queriesmock.NewMockUserReadStore(ctrl)
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	svc := commands.NewAuthCommandService(users, jwtService, &fakeUnitOfWork{st: newEngineState()})
	return svc, users, jwtService
}

func activeUserView(role string) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Email:    "player@example.com",
		FullName: "Test Player",
		Role:     role,
		IsActive: true,
	}
}

func TestLogin(t *testing.T) {
	hash, err := password.HashPassword("correct-horse")
	require.NoError(t, err)

	t.Run("valid credentials issue both tokens", func(t *testing.T) {
		svc, users, jwtService := newAuthService(t)
		view := activeUserView("user")
		users.EXPECT().FindByEmail(gomock.Any(), "player@example.com").Return(view, hash, nil)

		pair, err := svc.Login(context.Background(), "player@example.com", "correct-horse")
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)

		claims, err = jwtService.ValidateToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), "player@example.com").Return(activeUserView("user"), hash, nil)

		_, err := svc.Login(context.Background(), "player@example.com", "wrong")
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("malformed email never reaches the store", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.Login(context.Background(), "not-an-email", "correct-horse")
		require.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("deactivated account", func(t *testing.T) {
		svc, users, _ := newAuthService(t)
		view := activeUserView("user")
		view.IsActive = false
		users.EXPECT().FindByEmail(gomock.Any(), "player@example.com").Return(view, hash, nil)

		_, err := svc.Login(context.Background(), "player@example.com", "correct-horse")
		require.ErrorIs(t, err, commands.ErrUserInactive)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		svc, users, jwtService := newAuthService(t)
		view := activeUserView("admin")
		token, err := jwtService.GenerateRefreshToken(view.ID, "admin")
		require.NoError(t, err)
		users.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		pair, err := svc.Refresh(context.Background(), token)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		svc, _, jwtService := newAuthService(t)
		token, err := jwtService.GenerateAccessToken(uuid.New(), "user")
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), token)
		require.ErrorIs(t, err, commands.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _, _ := newAuthService(t)

		_, err := svc.Refresh(context.Background(), "not.a.token")
		require.ErrorIs(t, err, commands.ErrInvalidToken)
	})

	t.Run("deactivated account cannot refresh", func(t *testing.T) {
		svc, users, jwtService := newAuthService(t)
		view := activeUserView("user")
		view.IsActive = false
		token, err := jwtService.GenerateRefreshToken(view.ID, "user")
		require.NoError(t, err)
		users.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err = svc.Refresh(context.Background(), token)
		require.ErrorIs(t, err, commands.ErrUserInactive)
	})
}
