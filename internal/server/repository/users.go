package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

// UsersRepository — пользователи в PostgreSQL.
//
// Список мест пользователя хранится в колонке users.places (uuid[]) в порядке добавления.
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя с пустым списком мест.
// Занятый email — serr.ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, user *models.User) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, image)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.Image,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, errors.Join(serr.ErrInternal, err)
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, image, places, created_at FROM users WHERE email=$1`,
		email,
	)
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, image, places, created_at FROM users WHERE id=$1`,
		id,
	)
}

// List отдаёт всех пользователей без хэшей паролей.
func (r *UsersRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, image, places, created_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var (
			u      models.User
			places []string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Image, pq.Array(&places), &u.CreatedAt); err != nil {
			return nil, errors.Join(serr.ErrInternal, err)
		}
		if u.Places, err = parseUUIDs(places); err != nil {
			return nil, errors.Join(serr.ErrInternal, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	return users, nil
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		u      models.User
		places []string
	)

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, pq.Array(&places), &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, errors.Join(serr.ErrInternal, err)
	}

	if u.Places, err = parseUUIDs(places); err != nil {
		return nil, errors.Join(serr.ErrInternal, err)
	}
	return &u, nil
}

func parseUUIDs(ss []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse place id %q: %w", s, err)
		}
		out = append(out, id)
	}
	return out, nil
}
