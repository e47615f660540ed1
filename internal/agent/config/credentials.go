// Package config хранит локальные учётные данные CLI-клиента places:
//
//	~/.places/credentials.json
//
// Файл пишется с правами 0600, каталог — 0700.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Credentials — то, что вернул сервер после signup/login.
type Credentials struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	// Server — адрес, на котором выполнен вход.
	Server string `json:"server,omitempty"`
}

// LoggedIn — есть ли сохранённый токен.
func (c *Credentials) LoggedIn() bool {
	return c != nil && c.Token != ""
}

// DefaultPath возвращает <home>/.places/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".places", "credentials.json"), nil
}

// Load читает файл. Если файла нет — пустые Credentials без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save пишет c в path, создавая каталог при необходимости.
func Save(path string, c *Credentials) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Clear удаляет файл. Отсутствующий файл — не ошибка.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
