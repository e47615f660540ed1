package service

import (
	"context"
	"errors"
	"fmt"
)

// withinTx открывает единицу работы, выполняет fn и коммитит.
// Если fn вернула ошибку или запаниковала — откат, коммит не вызывается.
func withinTx(ctx context.Context, tm TxManager, fn func(uow UnitOfWork) error) (err error) {
	uow, err := tm.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback()
			panic(p)
		}
	}()

	if err = fn(uow); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err = uow.Commit(); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// NewTxManager превращает Begin конкретного хранилища в TxManager.
// Ошибка Begin отдаётся как есть, без типизированного nil в UnitOfWork.
func NewTxManager[U UnitOfWork](begin func(ctx context.Context) (U, error)) TxManager {
	return txFunc(func(ctx context.Context) (UnitOfWork, error) {
		uow, err := begin(ctx)
		if err != nil {
			return nil, err
		}
		return uow, nil
	})
}

type txFunc func(ctx context.Context) (UnitOfWork, error)

func (f txFunc) Begin(ctx context.Context) (UnitOfWork, error) {
	return f(ctx)
}
