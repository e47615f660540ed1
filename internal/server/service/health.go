package service

import (
	"context"
	"fmt"
)

// Pinger — любая зависимость, доступность которой проверяет /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthService проверяет БД и дополнительные зависимости (Redis, если включён rate limit).
type HealthService struct {
	repo   HealthRepo
	extras map[string]Pinger
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo, extras: map[string]Pinger{}}
}

// Register добавляет зависимость под именем name.
func (s *HealthService) Register(name string, p Pinger) {
	s.extras[name] = p
}

// Check возвращает первую найденную ошибку.
func (s *HealthService) Check(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	for name, p := range s.extras {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
