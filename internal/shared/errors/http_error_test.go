package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", serr.NewValidationError("bad input"), http.StatusUnprocessableEntity, "bad input"},
		{"auth 401", serr.NewAuthError(http.StatusUnauthorized, "nope"), http.StatusUnauthorized, "nope"},
		{"auth 403", serr.NewAuthError(http.StatusForbidden, "forbidden"), http.StatusForbidden, "forbidden"},
		{"not found", serr.NewNotFoundError("missing"), http.StatusNotFound, "missing"},
		{"internal hides cause", serr.NewInternalError("db down", errors.New("dial tcp")), http.StatusInternalServerError, "db down"},
		{"wrapped", fmt.Errorf("ctx: %w", serr.NewNotFoundError("missing")), http.StatusNotFound, "missing"},
		{"untagged", errors.New("boom"), http.StatusInternalServerError, serr.DefaultMessage},
		{"empty message", &serr.HTTPError{Code: http.StatusNotFound}, http.StatusNotFound, serr.DefaultMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := serr.Render(tt.err)
			require.Equal(t, tt.wantCode, code)
			require.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestHTTPError_Is(t *testing.T) {
	cause := errors.New("tx aborted")
	err := serr.NewInternalError("create failed", cause)

	require.ErrorIs(t, err, serr.ErrInternal)
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, serr.NewNotFoundError("x"), serr.ErrNotFound)
	require.ErrorIs(t, serr.NewAuthError(http.StatusForbidden, "x"), serr.ErrForbidden)
	require.NotErrorIs(t, serr.NewAuthError(http.StatusForbidden, "x"), serr.ErrUnauthorized)
}

func TestNewAuthError_UnknownCodeFallsBackTo403(t *testing.T) {
	err := serr.NewAuthError(http.StatusTeapot, "x")
	require.Equal(t, http.StatusForbidden, err.Code)
}
