package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// 常に通す／常に弾くValidator
type okValidator struct{}

func (okValidator) ValidateRegister(context.Context, string, string, string) error { return nil }
func (okValidator) ValidateLogin(context.Context, string, string) error            { return nil }

type ngValidator struct{ err error }

func (v ngValidator) ValidateRegister(context.Context, string, string, string) error { return v.err }
func (v ngValidator) ValidateLogin(context.Context, string, string) error            { return v.err }

type authFixture struct {
	users *UserRepoMock
	uc    *AuthUsecase
}

func newAuthFixture(v AuthValidator) *authFixture {
	f := &authFixture{users: new(UserRepoMock)}
	cfg := config.Config{JWTSecret: "test-secret"}
	// テストなので最小コスト
	f.uc = NewAuthUsecase(cfg, f.users, NewBcryptPasswordHasher(bcrypt.MinCost), NewBcryptPasswordVerifier(), v)
	return f
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(okValidator{})

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 平文は保存しない
		return u.Username == "alice" && u.Role == model.RoleUser &&
			u.PasswordHash != "" && u.PasswordHash != "password123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 5
	}).Return(nil)

	dto, err := f.uc.Register(context.Background(), RegisterInput{
		Username: " alice ",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), dto.ID)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "USER", dto.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture(okValidator{})

	f.users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestRegisterValidationFails(t *testing.T) {
	f := newAuthFixture(ngValidator{err: errors.New("password is too weak")})

	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "short",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	f.users.AssertNumberOfCalls(t, "Create", 0)
}

func TestLoginIssuesToken(t *testing.T) {
	f := newAuthFixture(okValidator{})

	hash, err := NewBcryptPasswordHasher(bcrypt.MinCost).Hash("password123")
	require.NoError(t, err)

	f.users.On("FindByUsername", mock.Anything, "alice").Return(model.User{
		ID: 5, Username: "alice", PasswordHash: hash, Role: model.RoleUser,
	}, nil)

	resp, err := f.uc.Login(context.Background(), "alice", "password123")

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresIn, 0)

	// 発行したトークンは自分の秘密鍵で検証できて、subとroleが入っている
	tok, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(5), claims["sub"])
	assert.Equal(t, "USER", claims["role"])
	assert.NotEmpty(t, claims["jti"])
}

// ユーザー無しもパスワード不一致も同じ401
func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture(okValidator{})

	hash, err := NewBcryptPasswordHasher(bcrypt.MinCost).Hash("password123")
	require.NoError(t, err)

	f.users.On("FindByUsername", mock.Anything, "alice").Return(model.User{
		ID: 5, Username: "alice", PasswordHash: hash, Role: model.RoleUser,
	}, nil)
	f.users.On("FindByUsername", mock.Anything, "nobody").Return(model.User{}, repo.ErrNotFound)

	_, err = f.uc.Login(context.Background(), "alice", "wrong-password")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)

	_, err = f.uc.Login(context.Background(), "nobody", "password123")
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(okValidator{})

	f.users.On("FindByID", mock.Anything, int64(5)).Return(model.User{
		ID: 5, Username: "alice", Email: "old@example.com", Role: model.RoleUser,
	}, nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == 5 && u.Email == "new@example.com" && u.Address == "Tokyo"
	})).Return(nil)

	dto, err := f.uc.UpdateProfile(context.Background(), 5, UpdateProfileInput{
		Email:   " new@example.com ",
		Address: "Tokyo",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", dto.Email)
	f.users.AssertExpectations(t)
}
