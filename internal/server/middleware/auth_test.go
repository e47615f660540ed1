package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-places/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

var jwtCfg = crypto.JWTConfig{
	Issuer:     "places-api",
	Audience:   "places-web",
	SigningKey: "test-signing-key-with-at-least-32-chars",
	AccessTTL:  time.Hour,
}

func requireAuthFailed(t *testing.T, err error) {
	t.Helper()
	code, msg := serr.Render(err)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, middleware.MsgAuthFailed, msg)
}

func TestAuthenticate_OK(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtCfg)
	id := uuid.New()
	token, err := crypto.NewAccessToken(id.String(), "a@b.c", jwtCfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/places", nil)
	req.Header.Set("Authorization", "bearer "+token)

	got, err := v.Authenticate(req)
	require.NoError(t, err)

	uid, ok := middleware.UserIDFromContext(got.Context())
	require.True(t, ok)
	require.Equal(t, id, uid)
}

func TestAuthenticate_OptionsPassThrough(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtCfg)
	req := httptest.NewRequest(http.MethodOptions, "/api/places", nil)

	got, err := v.Authenticate(req)
	require.NoError(t, err)
	_, ok := middleware.UserIDFromContext(got.Context())
	require.False(t, ok)
}

func TestAuthenticate_Failures(t *testing.T) {
	v := middleware.NewJWTVerifier(jwtCfg)
	id := uuid.NewString()

	expired := jwtCfg
	expired.AccessTTL = -time.Minute
	expiredToken, err := crypto.NewAccessToken(id, "a@b.c", expired)
	require.NoError(t, err)

	otherKey := jwtCfg
	otherKey.SigningKey = "another-signing-key-with-32-chars-min"
	foreignToken, err := crypto.NewAccessToken(id, "a@b.c", otherKey)
	require.NoError(t, err)

	otherAud := jwtCfg
	otherAud.Audience = "someone-else"
	audToken, err := crypto.NewAccessToken(id, "a@b.c", otherAud)
	require.NoError(t, err)

	notUUID, err := crypto.NewAccessToken("p1", "a@b.c", jwtCfg)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, crypto.Claims{UserID: id})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"bearer without token", "Bearer "},
		{"garbage", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expiredToken},
		{"wrong key", "Bearer " + foreignToken},
		{"wrong audience", "Bearer " + audToken},
		{"user id is not uuid", "Bearer " + notUUID},
		{"alg none", "Bearer " + noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/places/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			_, err := v.Authenticate(req)
			requireAuthFailed(t, err)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", middleware.ExtractBearer("Bearer abc"))
	require.Equal(t, "abc", middleware.ExtractBearer("  BEARER   abc "))
	require.Empty(t, middleware.ExtractBearer("Token abc"))
	require.Empty(t, middleware.ExtractBearer("Bearer"))
}
