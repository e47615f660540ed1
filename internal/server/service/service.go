// Package service содержит бизнес-логику приложения (places).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
//
// Все ошибки, которые возвращают сервисы, — *serr.HTTPError (код + сообщение для клиента).
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UsersRepo,PlacesRepo,TxManager,UnitOfWork,Geocoder,ImageRemover,HealthRepo

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/config"
	"github.com/IvanChernomyrdin/go-places/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
)

// validate — общий валидатор входных структур (теги `validate`).
var validate = newValidator()

// maxPasswordBytes — больше bcrypt не принимает.
const maxPasswordBytes = 72

func newValidator() *validator.Validate {
	v := validator.New()
	// max=N считает руны, а bcrypt ограничен байтами
	if err := v.RegisterValidation("passwordbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Places PlacesRepo
	Tx     TxManager
	Health HealthRepo
}

// Deps — внешние зависимости сервисов, не относящиеся к БД.
type Deps struct {
	Geocoder Geocoder
	Images   ImageRemover
	Log      *logger.HTTPLogger
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users  *UsersService
	Places *PlacesService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен UsersService (хэширование пароля и параметры токена).
func NewServices(repos Repositories, deps Deps, cfg *config.Config) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(
		cfg.Password.Hasher,
		cfg.Password.Bcrypt.Cost,
		crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	return &Services{
		Users:  NewUsersService(repos.Users, hasher, JWTConfigFrom(cfg)),
		Places: NewPlacesService(repos.Places, repos.Users, repos.Tx, deps.Geocoder, deps.Images, deps.Log),
		Health: NewHealthService(repos.Health),
	}, nil
}

// JWTConfigFrom достаёт параметры токена из конфига.
func JWTConfigFrom(cfg *config.Config) crypto.JWTConfig {
	return crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей.
//
// Get* возвращают serr.ErrNotFound, если записи нет; Create — serr.ErrAlreadyExists на занятый email.
type UsersRepo interface {
	Create(ctx context.Context, user *models.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// PlacesRepo — чтение и обновление мест вне транзакции.
type PlacesRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Place, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Place, error)
	Update(ctx context.Context, place *models.Place) error
}

// TxManager открывает единицу работы (транзакцию БД).
type TxManager interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork — две связанные записи (место + список мест пользователя),
// которые фиксируются или откатываются вместе.
type UnitOfWork interface {
	InsertPlace(ctx context.Context, place *models.Place) error
	DeletePlace(ctx context.Context, placeID uuid.UUID) error
	AddPlaceToUser(ctx context.Context, userID, placeID uuid.UUID) error
	RemovePlaceFromUser(ctx context.Context, userID, placeID uuid.UUID) error
	Commit() error
	Rollback() error
}

// Geocoder превращает адрес в координаты.
// Ошибки уже готовые *serr.HTTPError и пробрасываются как есть.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Location, error)
}

// ImageRemover удаляет сохранённую картинку в фоне (ошибки только логируются).
type ImageRemover interface {
	RemoveAsync(path string)
}
