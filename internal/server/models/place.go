package models

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Lat float64
	Lng float64
}

type Place struct {
	ID          uuid.UUID
	Title       string
	Description string
	Image       string
	Address     string
	Location    Location
	CreatorID   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
