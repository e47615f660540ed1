package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
)

type stepKey struct{}

func TestPipeline_RunsInOrder(t *testing.T) {
	var order []string
	step := func(name string) middleware.Step {
		return func(r *http.Request) (*http.Request, error) {
			order = append(order, name)
			return r.WithContext(context.WithValue(r.Context(), stepKey{}, name)), nil
		}
	}

	var seen any
	h := middleware.Pipeline(
		func(http.ResponseWriter, *http.Request, error) { t.Fatal("onError must not be called") },
		step("a"), step("b"),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Context().Value(stepKey{})
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b"}, order)
	require.Equal(t, "b", seen)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

// первая ошибка останавливает цепочку, обработчик не вызывается
func TestPipeline_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	var calledSecond, calledHandler bool
	var gotErr error
	var gotCtxValue any

	h := middleware.Pipeline(
		func(w http.ResponseWriter, r *http.Request, err error) {
			gotErr = err
			gotCtxValue = r.Context().Value(stepKey{})
			w.WriteHeader(http.StatusForbidden)
		},
		func(r *http.Request) (*http.Request, error) {
			return r.WithContext(context.WithValue(r.Context(), stepKey{}, "first")), nil
		},
		func(r *http.Request) (*http.Request, error) { return nil, boom },
		func(r *http.Request) (*http.Request, error) { calledSecond = true; return r, nil },
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calledHandler = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.ErrorIs(t, gotErr, boom)
	require.Equal(t, "first", gotCtxValue)
	require.False(t, calledSecond)
	require.False(t, calledHandler)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
