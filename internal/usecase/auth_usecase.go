package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username string, email string, password string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type AuthLoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int     `json:"expires_in"`
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	hasher    PasswordHasher
	verifier  PasswordVerifier
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		hasher:    hasher,
		verifier:  verifier,
		validator: validator,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Address  string
}

// Register は会員登録。usernameの重複は409。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserDTO, error) {
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.Password); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := model.User{
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(in.Email),
		Address:      strings.TrimSpace(in.Address),
		Role:         model.RoleUser,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		if err == repo.ErrConflict {
			return UserDTO{}, NewHTTPError(http.StatusConflict, "username already taken")
		}
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

// Login は認証してJWTを発行する。
// 失敗理由（ユーザー無し／パスワード不一致）は外から区別できない。
func (u *AuthUsecase) Login(ctx context.Context, username string, password string) (AuthLoginResponse, error) {
	if err := u.validator.ValidateLogin(ctx, username, password); err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err == repo.ErrNotFound {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !u.verifier.Verify(password, user.PasswordHash) {
		return AuthLoginResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issueToken(user)
	if err != nil {
		return AuthLoginResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthLoginResponse{
		User:        toUserDTO(user),
		AccessToken: token,
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
	}, nil
}

// GetProfile は自分のプロフィールを返す。
func (u *AuthUsecase) GetProfile(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

type UpdateProfileInput struct {
	Email      string
	Address    string
	ProfilePic string
}

// UpdateProfile はemail・住所・画像を更新する。
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserDTO{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	user.Email = strings.TrimSpace(in.Email)
	user.Address = strings.TrimSpace(in.Address)
	user.ProfilePic = strings.TrimSpace(in.ProfilePic)

	if err := u.users.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// HS256でアクセストークンを署名する。jtiはuuid。
func (u *AuthUsecase) issueToken(user model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func toUserDTO(user model.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Address:  user.Address,
		Role:     string(user.Role),
	}
}
