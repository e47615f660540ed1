// Package middleware содержит HTTP middleware сервера.
//
// Обычные middleware (request id, логирование, CORS, rate limit) оборачивают
// весь роутер. Шаги, которые могут завершить запрос ошибкой (проверка токена,
// загрузка файла), собираются в Pipeline: шаги идут по порядку, первая ошибка
// уходит в общий обработчик ошибок и дальше запрос не идёт.
package middleware

import "net/http"

// Step — один шаг обработки запроса.
// Возвращает запрос (возможно с новым контекстом) или ошибку.
type Step func(r *http.Request) (*http.Request, error)

// ErrorHandler пишет ответ для ошибки шага.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Pipeline собирает шаги в chi-совместимый middleware.
//
// onError получает последний успешно полученный запрос,
// так что в его контексте уже есть всё, что положили предыдущие шаги.
func Pipeline(onError ErrorHandler, steps ...Step) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, step := range steps {
				nr, err := step(r)
				if err != nil {
					onError(w, r, err)
					return
				}
				if nr != nil {
					r = nr
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
