// Package api содержит HTTP-клиент для сервера places.
//
// Клиент хранит базовый URL и настроенный http.Client и умеет:
//   - отправлять JSON (POST/PATCH) и читать JSON-ответ;
//   - отправлять multipart-форму с одним файлом (signup, создание места);
//   - превращать ответ {message} с кодом не 2xx в *Error.
//
// Пустое тело успешного ответа ошибкой не считается.
package api

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Error — ошибка, которую вернул сервер.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client — HTTP-клиент сервера places.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиента для baseURL (завершающий "/" обрезается).
//
// insecure=true отключает проверку TLS-сертификата. Только для локального
// сервера с самоподписанным сертификатом.
func NewClient(baseURL string, insecure bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: tr,
		},
	}
}

// readAPIError разбирает {message}. Если тело не JSON — берём текст как есть,
// если пустое — res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var body struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		msg = body.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = res.Status
	}
	return &Error{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует r в resp; resp == nil и пустое тело — не ошибка.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do отправляет запрос и разбирает ответ.
func (c *Client) do(method, path string, body io.Reader, contentType string, resp any, authToken string) error {
	r, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

func (c *Client) sendJSON(method, path string, req, resp any, authToken string) error {
	if req == nil {
		return c.do(method, path, nil, "", resp, authToken)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return err
	}
	return c.do(method, path, &buf, "application/json", resp, authToken)
}

// PostJSON — POST с JSON-телом (req == nil — без тела).
func (c *Client) PostJSON(path string, req, resp any, authToken string) error {
	return c.sendJSON(http.MethodPost, path, req, resp, authToken)
}

// PatchJSON — PATCH с JSON-телом.
func (c *Client) PatchJSON(path string, req, resp any, authToken string) error {
	return c.sendJSON(http.MethodPatch, path, req, resp, authToken)
}

// GetJSON — GET и декодирование ответа в resp.
func (c *Client) GetJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodGet, path, nil, "", resp, authToken)
}

// DeleteJSON — DELETE и декодирование ответа в resp.
func (c *Client) DeleteJSON(path string, resp any, authToken string) error {
	return c.do(http.MethodDelete, path, nil, "", resp, authToken)
}

// PostMultipart отправляет форму fields и один файл filePath в поле fileField.
// Content-Type части выбирается по расширению файла.
func (c *Client) PostMultipart(path string, fields map[string]string, fileField, filePath string, resp any, authToken string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filePath)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filepath.Base(filePath)))
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	return c.do(http.MethodPost, path, &buf, mw.FormDataContentType(), resp, authToken)
}
