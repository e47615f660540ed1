package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-places/internal/server/service"
	"github.com/IvanChernomyrdin/go-places/internal/server/service/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockHealthRepo(ctrl)
	svc := service.NewHealthService(repo)

	repo.EXPECT().Ping(ctx).Return(nil)
	require.NoError(t, svc.Check(ctx))

	repo.EXPECT().Ping(ctx).Return(errors.New("db down"))
	require.ErrorContains(t, svc.Check(ctx), "database")

	svc.Register("redis", pingFunc(func(context.Context) error { return errors.New("redis down") }))
	repo.EXPECT().Ping(ctx).Return(nil)
	require.ErrorContains(t, svc.Check(ctx), "redis: redis down")
}
