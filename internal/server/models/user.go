// Серверные модели пользователя и места
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Places       []uuid.UUID // порядок добавления
	CreatedAt    time.Time
}
