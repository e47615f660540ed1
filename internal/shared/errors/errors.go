// Package errors содержит общие доменные ошибки приложения
// и типизированную HTTP-ошибку (сообщение + код).
//
// Sentinel-ошибки используются в repository слое, HTTPError — в service слое,
// а api слой превращает любую ошибку в ответ {message} через Render.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Доступ запрещён (нет/битый токен, неверный пароль)
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для загрузки файлов
var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrTooManyFiles    = errors.New("too many files")
)
