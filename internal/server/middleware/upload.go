package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

const (
	MsgFileTooLarge     = "File too large."
	MsgInvalidFileType  = "Invalid file extension!"
	MsgTooManyFiles     = "Only one file is allowed."
	MsgUnexpectedField  = "Unexpected file field."
	MsgUploadSaveFailed = "Could not save uploaded file."
	MsgBadForm          = "Could not parse multipart form."

	// запас на текстовые поля формы сверх лимита на файл
	formOverhead = 1 << 20
)

const uploadKey ctxKey = "upload_path"

// mimeExt — разрешённые типы картинок и их расширения.
var mimeExt = map[string]string{
	"image/png":  "png",
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
}

// FileSaver сохраняет файл и возвращает путь к нему.
type FileSaver interface {
	Save(src io.Reader, ext string) (string, error)
}

// Uploader принимает картинку из multipart-формы.
type Uploader struct {
	store    FileSaver
	maxBytes int64
}

func NewUploader(store FileSaver, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes}
}

// UploadFromContext — путь сохранённого файла текущего запроса.
func UploadFromContext(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(uploadKey).(string)
	return p, ok && p != ""
}

// WithUpload кладёт путь файла в контекст.
func WithUpload(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, uploadKey, path)
}

// Single возвращает шаг Pipeline, который принимает не больше одного файла
// в поле field. Запрос без файла (или не multipart) пропускается:
// отсутствие картинки проверяет сервис.
func (u *Uploader) Single(field string) Step {
	return func(r *http.Request) (*http.Request, error) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			return r, nil
		}

		r.Body = http.MaxBytesReader(nil, r.Body, u.maxBytes+formOverhead)
		if err := r.ParseMultipartForm(u.maxBytes + formOverhead); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgFileTooLarge, Err: serr.ErrFileTooLarge}
			}
			return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgBadForm, Err: err}
		}

		total := 0
		for name, files := range r.MultipartForm.File {
			if name != field && len(files) > 0 {
				return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgUnexpectedField, Err: serr.ErrInvalidInput}
			}
			total += len(files)
		}
		if total == 0 {
			return r, nil
		}
		if total > 1 {
			return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgTooManyFiles, Err: serr.ErrTooManyFiles}
		}

		fh := r.MultipartForm.File[field][0]
		if fh.Size > u.maxBytes {
			return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgFileTooLarge, Err: serr.ErrFileTooLarge}
		}

		ext, ok := mimeExt[strings.ToLower(fh.Header.Get("Content-Type"))]
		if !ok {
			return nil, &serr.HTTPError{Code: http.StatusUnprocessableEntity, Message: MsgInvalidFileType, Err: serr.ErrInvalidFileType}
		}

		f, err := fh.Open()
		if err != nil {
			return nil, serr.NewInternalError(MsgUploadSaveFailed, fmt.Errorf("open form file: %w", err))
		}
		defer f.Close()

		path, err := u.store.Save(f, ext)
		if err != nil {
			return nil, serr.NewInternalError(MsgUploadSaveFailed, err)
		}

		return r.WithContext(WithUpload(r.Context(), path)), nil
	}
}
