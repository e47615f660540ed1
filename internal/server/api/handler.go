// Package api реализует HTTP-слой сервера places.
//
// Пакет отвечает за:
//   - разбор входящих запросов (JSON, multipart-формы, параметры пути);
//   - вызов сервисного слоя и формирование JSON-ответов;
//   - единый вывод ошибок в формате {"message": "..."} (Fail).
package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"go.uber.org/zap"

	domain "github.com/IvanChernomyrdin/go-places/internal/server/models"
	"github.com/IvanChernomyrdin/go-places/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-places/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-places/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// MsgRouteNotFound — ответ на любой неизвестный маршрут.
const MsgRouteNotFound = "Could not find this route."

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: проверка JWT (шаг Pipeline для защищённых маршрутов);
//   - Uploader: приём картинки из multipart-формы (шаг Pipeline);
//   - Images: удаление картинки, если запрос с файлом завершился ошибкой.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
	Uploader *middleware.Uploader
	Images   service.ImageRemover
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(
	svc *service.Services,
	log *logger.HTTPLogger,
	verifier *middleware.JWTVerifier,
	uploader *middleware.Uploader,
	images service.ImageRemover,
) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
		Uploader: uploader,
		Images:   images,
	}
}

// Fail — единая точка вывода ошибок.
//
// Порядок:
//  1. загруженный в этом запросе файл удаляется (в фоне);
//  2. 5xx пишется в лог вместе с причиной и request id;
//  3. если ответ уже начат, больше ничего не пишем;
//  4. иначе {"message": ...} с кодом из ошибки.
func (h *Handler) Fail(w http.ResponseWriter, r *http.Request, err error) {
	if path, ok := middleware.UploadFromContext(r.Context()); ok && h.Images != nil {
		h.Images.RemoveAsync(path)
	}

	code, msg := serr.Render(err)
	if code >= http.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Int("status", code),
			zap.Error(err),
		)
	}

	if ww, ok := w.(interface{ Written() bool }); ok && ww.Written() {
		h.Log.Warn("response already started, error dropped",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		return
	}

	WriteJSON(w, code, models.MessageResponse{Message: msg})
}

// NotFound — обработчик для неизвестных маршрутов и методов.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Fail(w, r, serr.NewNotFoundError(MsgRouteNotFound))
}

// WriteJSON пишет v с кодом status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// isJSON — тело запроса в JSON (иначе читаем как форму).
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get(ContentType))
	return err == nil && mt == JsonContentType
}

func toPlaceDTO(p domain.Place) models.Place {
	return models.Place{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Address:     p.Address,
		Location:    models.Location{Lat: p.Location.Lat, Lng: p.Location.Lng},
		Creator:     p.CreatorID.String(),
	}
}

func toUserDTO(u domain.User) models.User {
	places := make([]string, 0, len(u.Places))
	for _, id := range u.Places {
		places = append(places, id.String())
	}
	return models.User{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Image:  u.Image,
		Places: places,
	}
}
