package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

// TxManager открывает транзакции PostgreSQL.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// Begin начинает транзакцию. Закрыть её (Commit/Rollback) обязан вызывающий.
func (m *TxManager) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	return &UnitOfWork{tx: tx}, nil
}

// UnitOfWork — запись места и списка мест пользователя в одной транзакции.
type UnitOfWork struct {
	tx *sql.Tx
}

// InsertPlace вставляет место, created_at/updated_at берутся из БД.
func (u *UnitOfWork) InsertPlace(ctx context.Context, p *models.Place) error {
	err := u.tx.QueryRowContext(ctx, `
		INSERT INTO places (id, title, description, image, address, lat, lng, creator_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.Image, p.Address, p.Location.Lat, p.Location.Lng, p.CreatorID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return errors.Join(serr.ErrInternal, err)
	}
	return nil
}

func (u *UnitOfWork) DeletePlace(ctx context.Context, placeID uuid.UUID) error {
	return u.execOne(ctx, `DELETE FROM places WHERE id=$1`, placeID)
}

// AddPlaceToUser дописывает место в конец users.places.
func (u *UnitOfWork) AddPlaceToUser(ctx context.Context, userID, placeID uuid.UUID) error {
	return u.execOne(ctx, `UPDATE users SET places = array_append(places, $2) WHERE id=$1`, userID, placeID)
}

func (u *UnitOfWork) RemovePlaceFromUser(ctx context.Context, userID, placeID uuid.UUID) error {
	return u.execOne(ctx, `UPDATE users SET places = array_remove(places, $2) WHERE id=$1`, userID, placeID)
}

func (u *UnitOfWork) Commit() error {
	return u.tx.Commit()
}

// Rollback после Commit — не ошибка.
func (u *UnitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// execOne выполняет запрос, который должен задеть ровно одну строку.
func (u *UnitOfWork) execOne(ctx context.Context, query string, args ...any) error {
	res, err := u.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Join(serr.ErrInternal, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Join(serr.ErrInternal, err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
