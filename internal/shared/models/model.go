// Package models содержит модели HTTP API, общие для сервера и CLI-клиента.
package models

// Location — координаты места.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place — место в том виде, в котором его отдаёт API.
//
// Image — относительный путь к картинке (uploads/images/<uuid>.<ext>),
// Creator — ID пользователя-владельца.
type Place struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	Creator     string   `json:"creator"`
}

// User — пользователь без пароля.
//
// Places — ID мест пользователя в порядке добавления.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Image  string   `json:"image"`
	Places []string `json:"places"`
}

// PlaceResponse — {"place":{...}}.
//
// Используется в:
//
//	GET /api/places/{pid}, POST /api/places, PATCH /api/places/{pid}
type PlaceResponse struct {
	Place Place `json:"place"`
}

// PlacesResponse — {"places":[...]}, GET /api/places/user/{uid}.
type PlacesResponse struct {
	Places []Place `json:"places"`
}

// UsersResponse — {"users":[...]}, GET /api/users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// UpdatePlaceRequest — тело PATCH /api/places/{pid}.
type UpdatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LoginRequest — тело POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — ответ signup и login.
type AuthResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// MessageResponse — {"message":"..."}: ответ DELETE и формат любой ошибки.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse — ответ GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
