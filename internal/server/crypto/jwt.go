// Package crypto содержит криптографические примитивы сервера:
//   - выпуск и проверку JWT access-токенов (HS256);
//   - хэширование паролей (bcrypt по умолчанию, argon2id опционально).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig описывает параметры генерации и проверки JWT access-токена.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен). Пустое — не проверяется.
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен). Пустое — не проверяется.
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
}

// Claims — полезная нагрузка токена: userId и email плюс стандартные поля.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ErrInvalidToken возвращается для любого непрошедшего проверку токена.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Кроме userId/email токен содержит sub (= userId), iss, aud, iat и exp.
func NewAccessToken(userID, email string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
		},
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseAccessToken проверяет подпись (только HS256), срок действия,
// issuer/audience (если заданы в cfg) и возвращает claims.
func ParseAccessToken(token string, cfg JWTConfig) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if strings.TrimSpace(claims.UserID) == "" {
		claims.UserID = claims.Subject
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
