package errors

import (
	"errors"
	"net/http"
)

// DefaultMessage отдаётся клиенту для любых ошибок без HTTP-кода.
const DefaultMessage = "An unknown error occurred!"

// HTTPError — ошибка с сообщением для клиента и HTTP-кодом.
//
// Err хранит исходную причину (ошибку БД, сети и т.п.), она попадает только в лог.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap отдаёт причину, а если её нет — sentinel по коду,
// чтобы работал errors.Is(err, ErrNotFound) и т.п.
func (e *HTTPError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := sentinelFor(e.Code); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinelFor(code int) error {
	switch code {
	case http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrInternal
	}
	return nil
}

// NewValidationError — 422, некорректные данные или конфликт по бизнес-правилам.
func NewValidationError(message string) *HTTPError {
	return &HTTPError{Code: http.StatusUnprocessableEntity, Message: message}
}

// NewAuthError — 401 или 403.
func NewAuthError(code int, message string) *HTTPError {
	if code != http.StatusUnauthorized && code != http.StatusForbidden {
		code = http.StatusForbidden
	}
	return &HTTPError{Code: code, Message: message}
}

// NewNotFoundError — 404.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{Code: http.StatusNotFound, Message: message}
}

// NewInternalError — 500, cause уходит только в лог.
func NewInternalError(message string, cause error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Message: message, Err: cause}
}

// Render превращает ошибку в пару (код, сообщение) для ответа клиенту.
// Ошибки без HTTP-кода становятся 500 с DefaultMessage.
func Render(err error) (int, string) {
	var he *HTTPError
	if errors.As(err, &he) {
		code := he.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		msg := he.Message
		if msg == "" {
			msg = DefaultMessage
		}
		return code, msg
	}
	return http.StatusInternalServerError, DefaultMessage
}
