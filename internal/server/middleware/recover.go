package middleware

import (
	"errors"
	"fmt"
	"net/http"
)

// Recover перехватывает панику обработчика и отдаёт её в onError как обычную ошибку,
// так что клиент получает тот же JSON, что и при любой другой 500.
//
// http.ErrAbortHandler пробрасывается дальше: net/http сам оборвёт соединение.
func Recover(onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if err, ok := p.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(p)
				}
				onError(w, r, fmt.Errorf("panic: %v", p))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
