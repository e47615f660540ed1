// HTTP-хендлеры пользователей: список, регистрация, логин
package api

import (
	"encoding/json"
	"net/http"

	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-places/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// GetUsers godoc
// @Summary      List users
// @Description  Returns all users without passwords.
// @Tags         users
// @Produce      json
// @Success      200 {object} models.UsersResponse
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/users [get]
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.Users.List(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	resp := models.UsersResponse{Users: make([]models.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toUserDTO(u))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Signup регистрирует пользователя.
//
// Форма multipart: name, email, password и картинка в поле image.
// Картинку к этому моменту уже сохранил шаг Uploader.Single("image");
// при любой ошибке Fail её удалит.
//
// Signup godoc
// @Summary      Sign up
// @Description  Creates a user with an avatar image and returns a JWT valid for 1 hour.
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Param        name      formData  string  true  "Name"
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password (min 6 chars)"
// @Param        image     formData  file    true  "png/jpg/jpeg, up to 500KB"
// @Success      201 {object} models.AuthResponse
// @Failure      422 {object} models.MessageResponse "Invalid input or user exists"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/users/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	image, _ := middleware.UploadFromContext(r.Context())

	res, err := h.Svc.Users.Signup(r.Context(), service.SignupInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Image:    image,
	})
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, models.AuthResponse{
		UserID: res.UserID.String(),
		Email:  res.Email,
		Token:  res.Token,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Checks email and password and returns a JWT valid for 1 hour.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Credentials"
// @Success      200 {object} models.AuthResponse
// @Failure      401 {object} models.MessageResponse "Email does not exist"
// @Failure      403 {object} models.MessageResponse "Invalid password"
// @Failure      500 {object} models.MessageResponse "Internal server error"
// @Router       /api/users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.Fail(w, r, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: service.MsgSignupInvalid, Err: serr.ErrBadJSON})
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	res, err := h.Svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.Fail(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, models.AuthResponse{
		UserID: res.UserID.String(),
		Email:  res.Email,
		Token:  res.Token,
	})
}
