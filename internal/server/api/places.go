// HTTP-хендлеры мест
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-places/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// GetPlaceByID godoc
// @Summary      Get place
// @Tags         places
// @Produce      json
// @Param        pid  path  string  true  "Place ID (UUID)"
// @Success      200 {object} models.PlaceResponse
// @Failure      404 {object} models.MessageResponse "Not found"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/places/{pid} [get]
func (h *Handler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	place, err := h.Svc.Places.GetByID(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, models.PlaceResponse{Place: toPlaceDTO(*place)})
}

// GetPlacesByUserID godoc
// @Summary      List user's places
// @Description  Places in the order the user added them. A user without places is 404.
// @Tags         places
// @Produce      json
// @Param        uid  path  string  true  "User ID (UUID)"
// @Success      200 {object} models.PlacesResponse
// @Failure      404 {object} models.MessageResponse "Not found"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/places/user/{uid} [get]
func (h *Handler) GetPlacesByUserID(w http.ResponseWriter, r *http.Request) {
	places, err := h.Svc.Places.ListByUser(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	resp := models.PlacesResponse{Places: make([]models.Place, 0, len(places))}
	for _, p := range places {
		resp.Places = append(resp.Places, toPlaceDTO(p))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CreatePlace создаёт место текущего пользователя.
//
// Адрес геокодируется через Google, картинку уже сохранил Uploader.
//
// CreatePlace godoc
// @Summary      Create place
// @Tags         places
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true  "Title"
// @Param        description  formData  string  true  "Description (min 5 chars)"
// @Param        address      formData  string  true  "Address"
// @Param        image        formData  file    true  "png/jpg/jpeg, up to 500KB"
// @Success      201 {object} models.PlaceResponse
// @Failure      403 {object} models.MessageResponse "Token authentication failed"
// @Failure      404 {object} models.MessageResponse "User not found"
// @Failure      422 {object} models.MessageResponse "Invalid input or unknown address"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/places [post]
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}
	image, _ := middleware.UploadFromContext(r.Context())

	place, err := h.Svc.Places.Create(r.Context(), service.CreatePlaceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		Image:       image,
	}, callerID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, models.PlaceResponse{Place: toPlaceDTO(*place)})
}

// UpdatePlace godoc
// @Summary      Update place
// @Description  Only the creator can edit a place. Title and description only.
// @Tags         places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        pid      path  string                     true  "Place ID (UUID)"
// @Param        request  body  models.UpdatePlaceRequest  true  "New title and description"
// @Success      200 {object} models.PlaceResponse
// @Failure      401 {object} models.MessageResponse "Not the creator"
// @Failure      403 {object} models.MessageResponse "Token authentication failed"
// @Failure      404 {object} models.MessageResponse "Not found"
// @Failure      422 {object} models.MessageResponse "Invalid input"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/places/{pid} [patch]
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.UpdatePlaceRequest
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Fail(w, r, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: service.MsgUpdateInvalid, Err: serr.ErrBadJSON})
			return
		}
	} else {
		req.Title = r.FormValue("title")
		req.Description = r.FormValue("description")
	}

	place, err := h.Svc.Places.Update(r.Context(), chi.URLParam(r, "pid"), service.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	}, callerID)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.PlaceResponse{Place: toPlaceDTO(*place)})
}

// DeletePlace godoc
// @Summary      Delete place
// @Description  Only the creator can delete a place. The image is removed after commit.
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        pid  path  string  true  "Place ID (UUID)"
// @Success      200 {object} models.MessageResponse
// @Failure      401 {object} models.MessageResponse "Not the creator"
// @Failure      403 {object} models.MessageResponse "Token authentication failed"
// @Failure      404 {object} models.MessageResponse "Not found"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/places/{pid} [delete]
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Places.Delete(r.Context(), chi.URLParam(r, "pid"), callerID); err != nil {
		h.Fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: service.MsgDeleted})
}

// caller — id пользователя из контекста. Без Authenticate в цепочке сюда не попасть,
// но если всё же попали — тот же 403, что и у проверки токена.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.Fail(w, r, serr.NewAuthError(http.StatusForbidden, middleware.MsgAuthFailed))
		return uuid.Nil, false
	}
	return id, true
}
