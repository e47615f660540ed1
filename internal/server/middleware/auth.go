package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

// MsgAuthFailed — единственное сообщение для любой проблемы с токеном.
const MsgAuthFailed = "Token authentication failed."

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// JWTVerifier проверяет access-токены.
//
// Используется как шаг Pipeline (Authenticate) и rate limit'ом
// для ключа по пользователю (UserID).
type JWTVerifier struct {
	cfg crypto.JWTConfig
}

// NewJWTVerifier создаёт новый JWTVerifier с заданными параметрами.
func NewJWTVerifier(cfg crypto.JWTConfig) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID кладёт userID в контекст (нужно и тестам обработчиков).
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// Authenticate — шаг Pipeline.
//
//   - OPTIONS пропускается без проверки (preflight);
//   - ожидает заголовок Authorization: Bearer <token>;
//   - проверяет подпись (только HS256), срок, issuer и audience;
//   - кладёт userId из токена в контекст.
//
// Любая ошибка — 403 "Token authentication failed.".
func (v *JWTVerifier) Authenticate(r *http.Request) (*http.Request, error) {
	if r.Method == http.MethodOptions {
		return r, nil
	}

	id, err := v.UserID(r)
	if err != nil {
		return nil, err
	}

	return r.WithContext(WithUserID(r.Context(), id)), nil
}

// UserID достаёт и проверяет токен из запроса, не трогая контекст.
func (v *JWTVerifier) UserID(r *http.Request) (uuid.UUID, error) {
	tokenStr := ExtractBearer(r.Header.Get("Authorization"))
	if tokenStr == "" {
		return uuid.Nil, serr.NewAuthError(http.StatusForbidden, MsgAuthFailed)
	}

	claims, err := crypto.ParseAccessToken(tokenStr, v.cfg)
	if err != nil {
		return uuid.Nil, &serr.HTTPError{Code: http.StatusForbidden, Message: MsgAuthFailed, Err: err}
	}

	id, err := uuid.Parse(strings.TrimSpace(claims.UserID))
	if err != nil {
		return uuid.Nil, &serr.HTTPError{Code: http.StatusForbidden, Message: MsgAuthFailed, Err: err}
	}
	return id, nil
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
