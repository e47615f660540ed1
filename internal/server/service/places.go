package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
)

const (
	MsgPlacesDBFailed      = "Something went wrong. Error getting places from DB."
	MsgPlaceNotFound       = "Could not find a place for the provided id."
	MsgUserPlacesNotFound  = "Could not find places for the provided user id."
	MsgCreateInvalid       = "Invalid inputs passed. Cannot create a new place."
	MsgCreatorLookupFailed = "Error occurred during finding user in database"
	MsgCreatorNotFound     = "Could not find user in database"
	MsgCreateFailed        = "Creating place failed. Error during creating new place to database."
	MsgUpdateInvalid       = "Invalid inputs passed. Cannot update place."
	MsgUpdateLookupFailed  = "Could not find place data from database"
	MsgUpdateForbidden     = "You are not allowed to edit this place. Only creator can edit own places."
	MsgUpdateFailed        = "Could not update place to database"
	MsgDeleteLookupFailed  = "Error during finding place data from database"
	MsgDeleteNotFound      = "Could not find this place to delete"
	MsgDeleteForbidden     = "You are not allowed to delete this place."
	MsgDeleteFailed        = "Could not delete place in database"
	MsgDeleted             = "Deleted place."
)

// PlacesService — работа с местами.
//
// Создание и удаление места меняют две таблицы (places и users.places),
// поэтому идут через единицу работы (withinTx).
type PlacesService struct {
	places   PlacesRepo
	users    UsersRepo
	tx       TxManager
	geocoder Geocoder
	images   ImageRemover
	log      *logger.HTTPLogger
}

// CreatePlaceInput — поля формы создания места. Image — путь сохранённой картинки.
type CreatePlaceInput struct {
	Title       string `validate:"required"`
	Description string `validate:"min=5"`
	Address     string `validate:"required"`
	Image       string `validate:"required"`
}

// UpdatePlaceInput — меняются только title и description.
type UpdatePlaceInput struct {
	Title       string `validate:"required"`
	Description string `validate:"min=5"`
}

func NewPlacesService(
	places PlacesRepo,
	users UsersRepo,
	tx TxManager,
	geocoder Geocoder,
	images ImageRemover,
	log *logger.HTTPLogger,
) *PlacesService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PlacesService{
		places:   places,
		users:    users,
		tx:       tx,
		geocoder: geocoder,
		images:   images,
		log:      log,
	}
}

// GetByID — место по id. Невалидный id — то же самое, что несуществующий.
func (s *PlacesService) GetByID(ctx context.Context, placeID string) (*models.Place, error) {
	id, err := uuid.Parse(placeID)
	if err != nil {
		return nil, serr.NewNotFoundError(MsgPlaceNotFound)
	}

	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NewNotFoundError(MsgPlaceNotFound)
		}
		return nil, serr.NewInternalError(MsgPlacesDBFailed, err)
	}
	return place, nil
}

// ListByUser — места пользователя в порядке users.places.
// Пустой список отдаётся как 404.
func (s *PlacesService) ListByUser(ctx context.Context, userID string) ([]models.Place, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, serr.NewNotFoundError(MsgUserPlacesNotFound)
	}

	places, err := s.places.ListByUser(ctx, id)
	if err != nil {
		return nil, serr.NewInternalError(MsgPlacesDBFailed, err)
	}
	if len(places) == 0 {
		return nil, serr.NewNotFoundError(MsgUserPlacesNotFound)
	}
	return places, nil
}

// Create геокодирует адрес и в одной транзакции сохраняет место
// и добавляет его в список мест создателя.
func (s *PlacesService) Create(ctx context.Context, in CreatePlaceInput, callerID uuid.UUID) (*models.Place, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)

	if err := validate.Struct(in); err != nil {
		return nil, serr.NewValidationError(MsgCreateInvalid)
	}

	loc, err := s.geocoder.Geocode(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NewNotFoundError(MsgCreatorNotFound)
		}
		return nil, serr.NewInternalError(MsgCreatorLookupFailed, err)
	}

	place := &models.Place{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Address:     in.Address,
		Location:    loc,
		CreatorID:   callerID,
	}

	err = withinTx(ctx, s.tx, func(uow UnitOfWork) error {
		if err := uow.InsertPlace(ctx, place); err != nil {
			return err
		}
		return uow.AddPlaceToUser(ctx, callerID, place.ID)
	})
	if err != nil {
		return nil, serr.NewInternalError(MsgCreateFailed, err)
	}

	return place, nil
}

// Update меняет title и description. Править может только создатель.
func (s *PlacesService) Update(ctx context.Context, placeID string, in UpdatePlaceInput, callerID uuid.UUID) (*models.Place, error) {
	in.Title = strings.TrimSpace(in.Title)

	if err := validate.Struct(in); err != nil {
		return nil, serr.NewValidationError(MsgUpdateInvalid)
	}

	id, err := uuid.Parse(placeID)
	if err != nil {
		return nil, serr.NewNotFoundError(MsgPlaceNotFound)
	}

	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return nil, serr.NewNotFoundError(MsgPlaceNotFound)
		}
		return nil, serr.NewInternalError(MsgUpdateLookupFailed, err)
	}

	if place.CreatorID != callerID {
		return nil, serr.NewAuthError(http.StatusUnauthorized, MsgUpdateForbidden)
	}

	place.Title = in.Title
	place.Description = in.Description
	if err := s.places.Update(ctx, place); err != nil {
		return nil, serr.NewInternalError(MsgUpdateFailed, err)
	}

	return place, nil
}

// Delete удаляет место и убирает его из списка мест создателя.
// Картинка удаляется после коммита в фоне, её ошибка на ответ не влияет.
func (s *PlacesService) Delete(ctx context.Context, placeID string, callerID uuid.UUID) error {
	id, err := uuid.Parse(placeID)
	if err != nil {
		return serr.NewNotFoundError(MsgDeleteNotFound)
	}

	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return serr.NewNotFoundError(MsgDeleteNotFound)
		}
		return serr.NewInternalError(MsgDeleteLookupFailed, err)
	}

	if place.CreatorID != callerID {
		return serr.NewAuthError(http.StatusUnauthorized, MsgDeleteForbidden)
	}

	err = withinTx(ctx, s.tx, func(uow UnitOfWork) error {
		if err := uow.DeletePlace(ctx, place.ID); err != nil {
			return err
		}
		return uow.RemovePlaceFromUser(ctx, place.CreatorID, place.ID)
	})
	if err != nil {
		return serr.NewInternalError(MsgDeleteFailed, err)
	}

	s.log.Debug("place deleted", zap.String("place_id", place.ID.String()), zap.String("image", place.Image))
	s.images.RemoveAsync(place.Image)
	return nil
}
