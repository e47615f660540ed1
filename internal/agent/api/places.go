// Методы клиента для эндпоинтов /api/users и /api/places.
package api

import (
	"net/url"

	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// Signup регистрирует пользователя с аватаром imagePath.
func (c *Client) Signup(name, email, password, imagePath string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostMultipart("/api/users/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "image", imagePath, &resp, "")
	return resp, err
}

// Login возвращает токен пользователя.
func (c *Client) Login(email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON("/api/users/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Users — все пользователи (без паролей).
func (c *Client) Users() ([]models.User, error) {
	var resp models.UsersResponse
	if err := c.GetJSON("/api/users", &resp, ""); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Place — место по id.
func (c *Client) Place(id string) (models.Place, error) {
	var resp models.PlaceResponse
	err := c.GetJSON("/api/places/"+url.PathEscape(id), &resp, "")
	return resp.Place, err
}

// PlacesByUser — места пользователя uid.
func (c *Client) PlacesByUser(uid string) ([]models.Place, error) {
	var resp models.PlacesResponse
	if err := c.GetJSON("/api/places/user/"+url.PathEscape(uid), &resp, ""); err != nil {
		return nil, err
	}
	return resp.Places, nil
}

// CreatePlace создаёт место от имени владельца token.
func (c *Client) CreatePlace(token, title, description, address, imagePath string) (models.Place, error) {
	var resp models.PlaceResponse
	err := c.PostMultipart("/api/places", map[string]string{
		"title":       title,
		"description": description,
		"address":     address,
	}, "image", imagePath, &resp, token)
	return resp.Place, err
}

// UpdatePlace меняет заголовок и описание.
func (c *Client) UpdatePlace(token, id, title, description string) (models.Place, error) {
	var resp models.PlaceResponse
	err := c.PatchJSON("/api/places/"+url.PathEscape(id), models.UpdatePlaceRequest{
		Title:       title,
		Description: description,
	}, &resp, token)
	return resp.Place, err
}

// DeletePlace удаляет место и возвращает сообщение сервера.
func (c *Client) DeletePlace(token, id string) (string, error) {
	var resp models.MessageResponse
	err := c.DeleteJSON("/api/places/"+url.PathEscape(id), &resp, token)
	return resp.Message, err
}
