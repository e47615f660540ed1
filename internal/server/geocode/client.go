// Package geocode — клиент Google Geocoding API: адрес -> координаты.
//
// Один запрос на вызов, без ретраев и кэша. Ошибки возвращаются
// как *serr.HTTPError и пробрасываются сервисом клиенту без изменений:
//   - ZERO_RESULTS -> 422;
//   - сеть, битый JSON, прочие статусы Google -> 500.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-places/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
)

const (
	MsgNoCoordinates = "Could not find coordinate for the given address."
	MsgRequestFailed = "Could not fetch coordinates for the given address."
)

// Client ходит в {baseURL}/maps/api/geocode/json.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient создаёт клиента. baseURL без завершающего "/", например https://maps.googleapis.com.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// response — только нужная часть ответа Google.
type response struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode возвращает координаты первого результата для адреса.
func (c *Client) Geocode(ctx context.Context, address string) (models.Location, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/maps/api/geocode/json?"+q.Encode(), nil)
	if err != nil {
		return models.Location{}, serr.NewInternalError(MsgRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return models.Location{}, serr.NewInternalError(MsgRequestFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return models.Location{}, serr.NewInternalError(MsgRequestFailed, fmt.Errorf("geocoding http status %s", res.Status))
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return models.Location{}, serr.NewInternalError(MsgRequestFailed, fmt.Errorf("decode geocoding response: %w", err))
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return models.Location{}, serr.NewValidationError(MsgNoCoordinates)
	default:
		return models.Location{}, serr.NewInternalError(MsgRequestFailed,
			fmt.Errorf("geocoding status %s: %s", body.Status, body.ErrorMessage))
	}

	if len(body.Results) == 0 {
		return models.Location{}, serr.NewValidationError(MsgNoCoordinates)
	}

	loc := body.Results[0].Geometry.Location
	return models.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
