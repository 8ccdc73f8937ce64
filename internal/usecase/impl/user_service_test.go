package impl

import (
	"context"
	"testing"

	"trolley/internal/domain/entity"
	domainerrors "trolley/internal/domain/errors"
	"trolley/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	fixture := newUserServiceFixture()

	out, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name:     "王小明",
		Email:    "ming@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, entity.RoleClient, out.User.Role)

	auth, err := fixture.authRepo.FindAuthenticationByEmail(context.Background(), "ming@example.com")
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, auth.UserID)
	assert.Equal(t, "hashed:correct horse battery", auth.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fixture := newUserServiceFixture()
	input := &usecase.RegisterInput{Name: "王小明", Email: "ming@example.com", Password: "pw-12345678"}

	_, err := fixture.svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = fixture.svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login(t *testing.T) {
	fixture := newUserServiceFixture()
	_, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name: "王小明", Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	out, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)

	// The refresh token is stored hashed, never in the clear.
	_, err = fixture.refreshRepo.FindRefreshTokenByHash(context.Background(), "h:"+out.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestUserService_Login_WrongCredentials(t *testing.T) {
	fixture := newUserServiceFixture()
	_, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name: "王小明", Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	_, err = fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "ming@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "nobody@example.com", Password: "pw-12345678",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_RotatesToken(t *testing.T) {
	fixture := newUserServiceFixture()
	_, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name: "王小明", Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	login, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	refreshed, err := fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	// The rotated-out token is revoked: a second use must fail.
	_, err = fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.Tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Refresh_RejectsAccessToken(t *testing.T) {
	fixture := newUserServiceFixture()
	_, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name: "王小明", Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	login, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	_, err = fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.Tokens.AccessToken,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout(t *testing.T) {
	fixture := newUserServiceFixture()
	_, err := fixture.svc.Register(context.Background(), &usecase.RegisterInput{
		Name: "王小明", Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	login, err := fixture.svc.Login(context.Background(), &usecase.LoginInput{
		Email: "ming@example.com", Password: "pw-12345678",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: login.Tokens.RefreshToken,
	}))

	// Logging out twice is a no-op, not an error.
	require.NoError(t, fixture.svc.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: login.Tokens.RefreshToken,
	}))

	_, err = fixture.svc.Refresh(context.Background(), &usecase.RefreshInput{
		RefreshToken: login.Tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}
