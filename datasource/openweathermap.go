package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"current-weather/models"

	"go.uber.org/zap"
)

// DefaultBaseURL is the OpenWeatherMap current weather endpoint
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// StatusError is returned internally when the API answers with a failure status
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error (status %d)", e.Code)
	}
	return fmt.Sprintf("API error (status %d): %s", e.Code, e.Message)
}

// errEmptyPayload marks a well-formed body that carries no data (null, {}, [] ...)
var errEmptyPayload = errors.New("empty response payload")

// OpenWeatherMapFetcher implements Fetcher against the OpenWeatherMap current weather API
type OpenWeatherMapFetcher struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure OpenWeatherMapFetcher implements Fetcher
var _ Fetcher = (*OpenWeatherMapFetcher)(nil)

// NewOpenWeatherMapFetcher creates a new OpenWeatherMap fetcher.
// An empty baseURL selects DefaultBaseURL.
func NewOpenWeatherMapFetcher(baseURL string, timeout time.Duration, logger *zap.Logger) *OpenWeatherMapFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenWeatherMapFetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Name returns the provider name
func (p *OpenWeatherMapFetcher) Name() string {
	return "OpenWeatherMap"
}

// Fetch performs a single GET for the city and converts every failure into an absent outcome
func (p *OpenWeatherMapFetcher) Fetch(ctx context.Context, city, apiKey string) models.Outcome {
	payload, err := p.fetch(ctx, city, apiKey)
	if err != nil {
		fields := []zap.Field{
			zap.String("source", p.Name()),
			zap.String("city", city),
			zap.Error(err),
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.Code))
		}
		p.logger.Error("An error occurred", fields...)
		return models.Absent()
	}

	p.logger.Debug("Fetched current weather", zap.String("source", p.Name()), zap.String("city", city))
	return models.Success(payload)
}

func (p *OpenWeatherMapFetcher) fetch(ctx context.Context, city, apiKey string) (models.WeatherPayload, error) {
	// query is attached after parsing; error text must never carry the key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to create request: %w", err)
	}

	params := req.URL.Query()
	params.Set("q", city)
	params.Set("appid", apiKey)
	params.Set("units", "metric") // Celsius
	req.URL.RawQuery = params.Encode()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to execute request: %w", p.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return models.WeatherPayload{}, &StatusError{Code: resp.StatusCode, Message: apiMessage(body)}
	}

	return decodePayload(body)
}

// redact strips the query string (which carries the API key) from transport errors
func (p *OpenWeatherMapFetcher) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = p.baseURL
	}
	return err
}

// decodePayload accepts any JSON document. Type mismatches on the displayed fields
// are left for the presenter to report; only invalid or empty documents fail here.
func decodePayload(body []byte) (models.WeatherPayload, error) {
	if !json.Valid(body) {
		return models.WeatherPayload{}, errors.New("failed to parse response: invalid JSON")
	}
	if isEmptyDocument(body) {
		return models.WeatherPayload{}, errEmptyPayload
	}

	var payload models.WeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return models.WeatherPayload{}, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	payload.Raw = json.RawMessage(body)
	return payload, nil
}

func isEmptyDocument(body []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return false
	}

	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// apiMessage extracts the "message" field OpenWeatherMap puts in error bodies
func apiMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Message
}
