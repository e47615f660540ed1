package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
)

// fakeUoW считает вызовы Commit/Rollback.
type fakeUoW struct {
	commits, rollbacks int
	commitErr          error
}

func (f *fakeUoW) InsertPlace(context.Context, *models.Place) error { return nil }
func (f *fakeUoW) DeletePlace(context.Context, uuid.UUID) error { return nil }
func (f *fakeUoW) AddPlaceToUser(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeUoW) RemovePlaceFromUser(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeUoW) Commit() error {
	f.commits++
	return f.commitErr
}

func (f *fakeUoW) Rollback() error {
	f.rollbacks++
	return nil
}

type fakeTM struct{ uow *fakeUoW }

func (m fakeTM) Begin(context.Context) (UnitOfWork, error) { return m.uow, nil }

func TestWithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		uow := &fakeUoW{}
		require.NoError(t, withinTx(ctx, fakeTM{uow}, func(UnitOfWork) error { return nil }))
		require.Equal(t, 1, uow.commits)
		require.Zero(t, uow.rollbacks)
	})

	t.Run("fn error", func(t *testing.T) {
		uow := &fakeUoW{}
		boom := errors.New("boom")
		require.ErrorIs(t, withinTx(ctx, fakeTM{uow}, func(UnitOfWork) error { return boom }), boom)
		require.Zero(t, uow.commits)
		require.Equal(t, 1, uow.rollbacks)
	})

	t.Run("panic", func(t *testing.T) {
		uow := &fakeUoW{}
		require.Panics(t, func() {
			_ = withinTx(ctx, fakeTM{uow}, func(UnitOfWork) error { panic("oops") })
		})
		require.Zero(t, uow.commits)
		require.Equal(t, 1, uow.rollbacks)
	})

	t.Run("commit error", func(t *testing.T) {
		uow := &fakeUoW{commitErr: errors.New("conflict")}
		require.Error(t, withinTx(ctx, fakeTM{uow}, func(UnitOfWork) error { return nil }))
		require.Equal(t, 1, uow.rollbacks)
	})
}

func TestNewTxManager(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		want := &fakeUoW{}
		tm := NewTxManager(func(context.Context) (*fakeUoW, error) { return want, nil })

		uow, err := tm.Begin(ctx)
		require.NoError(t, err)
		require.Same(t, want, uow)
	})

	// nil-указатель не должен превратиться в ненулевой интерфейс
	t.Run("begin error", func(t *testing.T) {
		boom := errors.New("too many connections")
		tm := NewTxManager(func(context.Context) (*fakeUoW, error) { return nil, boom })

		uow, err := tm.Begin(ctx)
		require.ErrorIs(t, err, boom)
		require.True(t, uow == nil)

		require.ErrorIs(t, withinTx(ctx, tm, func(UnitOfWork) error { return nil }), boom)
	})
}
