package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	"github.com/IvanChernomyrdin/go-places/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

var placeCols = []string{"id", "title", "description", "image", "address", "lat", "lng", "creator_id", "created_at", "updated_at"}

func placeRow(rows *sqlmock.Rows, id, creator uuid.UUID, title string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id.String(), title, "nice place", "uploads/images/x.png", "Main st 1", 40.7, -73.9, creator.String(), now, now)
}

func TestPlacesRepository_GetByID_OK(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	id, creator := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM places p WHERE p.id`).
		WithArgs(id).
		WillReturnRows(placeRow(sqlmock.NewRows(placeCols), id, creator, "Empire"))

	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.Equal(t, creator, p.CreatorID)
	require.Equal(t, models.Location{Lat: 40.7, Lng: -73.9}, p.Location)
}

func TestPlacesRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	mock.ExpectQuery(`FROM places`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestPlacesRepository_GetByID_Internal(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	mock.ExpectQuery(`FROM places`).WillReturnError(errors.New("conn reset"))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestPlacesRepository_ListByUser_KeepsOrder(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	user, p1, p2 := uuid.New(), uuid.New(), uuid.New()
	rows := sqlmock.NewRows(placeCols)
	placeRow(rows, p2, user, "second-added-first")
	placeRow(rows, p1, user, "first")

	mock.ExpectQuery(`unnest\(u.places\) WITH ORDINALITY`).
		WithArgs(user).
		WillReturnRows(rows)

	places, err := repo.ListByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, places, 2)
	require.Equal(t, p2, places[0].ID)
	require.Equal(t, p1, places[1].ID)
}

func TestPlacesRepository_ListByUser_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	mock.ExpectQuery(`FROM users u`).WillReturnRows(sqlmock.NewRows(placeCols))

	places, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, places)
	require.Empty(t, places)
}

func TestPlacesRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := repository.NewPlacesRepository(db)

	p := &models.Place{ID: uuid.New(), Title: "New", Description: "Updated text"}
	updated := time.Now().Add(time.Minute).Truncate(time.Second)

	mock.ExpectQuery(`UPDATE places`).
		WithArgs(p.ID, "New", "Updated text").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updated))

	require.NoError(t, repo.Update(context.Background(), p))
	require.Equal(t, updated, p.UpdatedAt)

	mock.ExpectQuery(`UPDATE places`).WillReturnError(sql.ErrNoRows)
	require.ErrorIs(t, repo.Update(context.Background(), p), serr.ErrNotFound)
}
