package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

// Сообщения об ошибках, которые видит клиент.
const (
	MsgUsersListFailed     = "Cannot get user data from database"
	MsgSignupInvalid       = "Invalid inputs passed, please check your data."
	MsgSignupLookupFailed  = "Signing up failed. Cannot find email validity from database."
	MsgUserExists          = "User exists already, please login instead."
	MsgHashFailed          = "Could not create user. Error during encrypting password."
	MsgUserSaveFailed      = "Could not save new user data in database"
	MsgTokenFailed         = "Creating jwt token failed"
	MsgLoginLookupFailed   = "Could not find data from database"
	MsgEmailNotFound       = "Email does not exist."
	MsgPasswordCheckFailed = "Validating password process failed."
	MsgInvalidPassword     = "Invalid password."
)

// UsersService — регистрация, логин и список пользователей.
type UsersService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	jwt    crypto.JWTConfig
}

// SignupInput — данные формы регистрации. Image — путь уже сохранённой картинки.
type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=6,passwordbytes"`
	Image    string `validate:"required"`
}

// AuthResult — то, что получает клиент после signup/login.
type AuthResult struct {
	UserID uuid.UUID
	Email  string
	Token  string
}

func NewUsersService(users UsersRepo, hasher crypto.PasswordHasher, jwt crypto.JWTConfig) *UsersService {
	return &UsersService{users: users, hasher: hasher, jwt: jwt}
}

// List возвращает всех пользователей (без хэшей паролей).
func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, serr.NewInternalError(MsgUsersListFailed, err)
	}
	return users, nil
}

// Signup регистрирует пользователя и сразу выдаёт токен.
//
// Ошибки:
//   - 422 некорректные данные или email уже занят
//   - 500 ошибки БД, хэширования и подписи токена
func (s *UsersService) Signup(ctx context.Context, in SignupInput) (AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validate.Struct(in); err != nil {
		return AuthResult{}, serr.NewValidationError(MsgSignupInvalid)
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return AuthResult{}, serr.NewValidationError(MsgUserExists)
	case !errors.Is(err, serr.ErrNotFound):
		return AuthResult{}, serr.NewInternalError(MsgSignupLookupFailed, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, serr.NewInternalError(MsgHashFailed, err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Image:        in.Image,
		Places:       []uuid.UUID{},
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		// гонка: email заняли между проверкой и вставкой
		if errors.Is(err, serr.ErrAlreadyExists) {
			return AuthResult{}, serr.NewValidationError(MsgUserExists)
		}
		return AuthResult{}, serr.NewInternalError(MsgUserSaveFailed, err)
	}

	return s.issue(id, in.Email)
}

// Login проверяет email и пароль и выдаёт токен.
//
// Ошибки:
//   - 401 email не найден
//   - 403 неверный пароль
//   - 500 ошибки БД, проверки хэша и подписи токена
func (s *UsersService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.NewAuthError(http.StatusUnauthorized, MsgEmailNotFound)
		}
		return AuthResult{}, serr.NewInternalError(MsgLoginLookupFailed, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, serr.NewInternalError(MsgPasswordCheckFailed, err)
	}
	if !ok {
		return AuthResult{}, serr.NewAuthError(http.StatusForbidden, MsgInvalidPassword)
	}

	return s.issue(user.ID, user.Email)
}

func (s *UsersService) issue(id uuid.UUID, email string) (AuthResult, error) {
	token, err := crypto.NewAccessToken(id.String(), email, s.jwt)
	if err != nil {
		return AuthResult{}, serr.NewInternalError(MsgTokenFailed, err)
	}
	return AuthResult{UserID: id, Email: email, Token: token}, nil
}
