package impl

import (
	"context"
	"fmt"
	"time"

	"trolley/internal/domain/entity"
	"trolley/internal/domain/repository"
	"trolley/internal/domain/service"
	"trolley/internal/usecase"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user

	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// fakeAuthRepo is an in-memory AuthRepository keyed by login email.
type fakeAuthRepo struct {
	auths map[string]*entity.Authentication
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{auths: make(map[string]*entity.Authentication)}
}

func (f *fakeAuthRepo) CreateAuthentication(_ context.Context, auth *entity.Authentication) error {
	if auth.ID == uuid.Nil {
		auth.ID = uuid.New()
	}
	f.auths[auth.Email] = auth

	return nil
}

func (f *fakeAuthRepo) FindAuthenticationByEmail(_ context.Context, email string) (*entity.Authentication, error) {
	auth, ok := f.auths[email]
	if !ok {
		return nil, repository.ErrAuthNotFound
	}

	return auth, nil
}

// fakeRefreshTokenRepo is an in-memory RefreshTokenRepository keyed by token hash.
type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	f.tokens[token.TokenHash] = token

	return nil
}

func (f *fakeRefreshTokenRepo) FindRefreshTokenByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}

	return token, nil
}

func (f *fakeRefreshTokenRepo) DeleteRefreshTokenByHash(_ context.Context, tokenHash string) error {
	if _, ok := f.tokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(f.tokens, tokenHash)

	return nil
}

func (f *fakeRefreshTokenRepo) DeleteRefreshTokensByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, token := range f.tokens {
		if token.UserID == userID {
			delete(f.tokens, hash)
		}
	}

	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpiredRefreshTokens(_ context.Context) error {
	now := time.Now()
	for hash, token := range f.tokens {
		if now.After(token.ExpiresAt) {
			delete(f.tokens, hash)
		}
	}

	return nil
}

// fakeRepoFactory hands the shared in-memory repositories to transactional code.
type fakeRepoFactory struct {
	userRepo         *fakeUserRepo
	authRepo         *fakeAuthRepo
	refreshTokenRepo *fakeRefreshTokenRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }

func (f *fakeRepoFactory) AuthRepo() repository.AuthRepository { return f.authRepo }

func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshTokenRepo
}

// fakeTxManager runs the transactional function directly against the shared
// repositories; there is no rollback, tests assert behavior, not atomicity.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// fakeHasher is a transparent PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return "hashed:"+password == hash }

// fakeTokenService issues predictable tokens and tracks their claims.
type fakeTokenService struct {
	issued  int
	claims  map[string]*service.Claims
	hashes  map[string]string
	refresh time.Duration
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{
		claims:  make(map[string]*service.Claims),
		hashes:  make(map[string]string),
		refresh: time.Hour,
	}
}

func (f *fakeTokenService) GenerateTokens(userID uuid.UUID, role string) (string, string, error) {
	f.issued++
	accessToken := fmt.Sprintf("access-%d", f.issued)
	refreshToken := fmt.Sprintf("refresh-%d", f.issued)
	f.claims[accessToken] = &service.Claims{UserID: userID, Role: role, Type: "access"}
	f.claims[refreshToken] = &service.Claims{UserID: userID, Role: role, Type: "refresh"}

	return accessToken, refreshToken, nil
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims, ok := f.claims[tokenString]
	if !ok {
		return nil, fmt.Errorf("unknown token %q", tokenString)
	}

	return claims, nil
}

func (f *fakeTokenService) HashToken(tokenString string) string { return "h:" + tokenString }

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration { return f.refresh }

// userServiceFixture bundles a user service with the fakes behind it.
type userServiceFixture struct {
	svc          usecase.UserUsecase
	userRepo     *fakeUserRepo
	authRepo     *fakeAuthRepo
	refreshRepo  *fakeRefreshTokenRepo
	tokenService *fakeTokenService
}

func newUserServiceFixture() *userServiceFixture {
	userRepo := newFakeUserRepo()
	authRepo := newFakeAuthRepo()
	refreshRepo := newFakeRefreshTokenRepo()
	tokenService := newFakeTokenService()
	factory := &fakeRepoFactory{userRepo: userRepo, authRepo: authRepo, refreshTokenRepo: refreshRepo}

	svc := NewUserService(UserServiceParams{
		TxManager:        &fakeTxManager{factory: factory},
		UserRepo:         userRepo,
		AuthRepo:         authRepo,
		RefreshTokenRepo: refreshRepo,
		Hasher:           fakeHasher{},
		TokenService:     tokenService,
		Logger:           discardLogger(),
	})

	return &userServiceFixture{
		svc:          svc,
		userRepo:     userRepo,
		authRepo:     authRepo,
		refreshRepo:  refreshRepo,
		tokenService: tokenService,
	}
}
