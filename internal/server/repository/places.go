package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

const placeColumns = `p.id, p.title, p.description, p.image, p.address, p.lat, p.lng, p.creator_id, p.created_at, p.updated_at`

// PlacesRepository — чтение и обновление мест.
// Вставка и удаление идут только через UnitOfWork вместе со списком мест пользователя.
type PlacesRepository struct {
	db *sql.DB
}

func NewPlacesRepository(db *sql.DB) *PlacesRepository {
	return &PlacesRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(s rowScanner) (*models.Place, error) {
	var p models.Place
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.Image, &p.Address,
		&p.Location.Lat, &p.Location.Lng, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID — место по id, serr.ErrNotFound если нет.
func (r *PlacesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Place, error) {
	p, err := scanPlace(r.db.QueryRowContext(ctx,
		`SELECT `+placeColumns+` FROM places p WHERE p.id=$1`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, errors.Join(serr.ErrInternal, err)
	}
	return p, nil
}

// ListByUser отдаёт места из users.places в порядке добавления.
// Нет пользователя или нет мест — пустой список без ошибки.
func (r *PlacesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Place, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+placeColumns+`
		FROM users u
		CROSS JOIN LATERAL unnest(u.places) WITH ORDINALITY AS up(place_id, ord)
		JOIN places p ON p.id = up.place_id
		WHERE u.id = $1
		ORDER BY up.ord`,
		userID,
	)
	if err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	defer rows.Close()

	places := make([]models.Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, errors.Join(serr.ErrInternal, err)
		}
		places = append(places, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	return places, nil
}

// Update меняет title и description, проставляет updated_at в place.
func (r *PlacesRepository) Update(ctx context.Context, place *models.Place) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE places
		SET title=$2, description=$3, updated_at=now()
		WHERE id=$1
		RETURNING updated_at`,
		place.ID, place.Title, place.Description,
	).Scan(&place.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return serr.ErrNotFound
		}
		return errors.Join(serr.ErrInternal, err)
	}
	return nil
}
