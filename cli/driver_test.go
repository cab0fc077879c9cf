package cli

import (
	"bytes"
	"context"
	"testing"

	"current-weather/models"
)

// mockFetcher returns a fixed outcome and records its calls
type mockFetcher struct {
	outcome models.Outcome
	calls   []models.WeatherQuery
}

func (m *mockFetcher) Name() string { return "Mock" }

func (m *mockFetcher) Fetch(ctx context.Context, city, apiKey string) models.Outcome {
	m.calls = append(m.calls, models.WeatherQuery{City: city, APIKey: apiKey})
	return m.outcome
}

func sunny() models.Outcome {
	var p models.WeatherPayload
	p.Weather = []models.Condition{{Description: "sunny"}}
	p.Main.Temp = "25.5"
	return models.Success(p)
}

func TestDriverSuccess(t *testing.T) {
	fetcher := &mockFetcher{outcome: sunny()}
	var out bytes.Buffer

	code := NewDriver(fetcher, "fake_key", &out, nil).Run(context.Background(), "London")

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if got := out.String(); got != "Current Weather: Sunny, 25.5°C\n" {
		t.Errorf("unexpected output %q", got)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != (models.WeatherQuery{City: "London", APIKey: "fake_key"}) {
		t.Errorf("expected one call with London/fake_key, got %+v", fetcher.calls)
	}
}

func TestDriverAbsent(t *testing.T) {
	fetcher := &mockFetcher{outcome: models.Absent()}
	var out bytes.Buffer

	code := NewDriver(fetcher, "fake_key", &out, nil).Run(context.Background(), "NotARealCity")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if got := out.String(); got != "Could not retrieve weather data for NotARealCity.\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestDriverMissingAPIKey(t *testing.T) {
	fetcher := &mockFetcher{outcome: sunny()}
	var out bytes.Buffer

	code := NewDriver(fetcher, "", &out, nil).Run(context.Background(), "London")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if got := out.String(); got != "Error: OPENWEATHER_API_KEY environment variable not set.\n" {
		t.Errorf("unexpected output %q", got)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("expected fetcher not to be called, got %d calls", len(fetcher.calls))
	}
}

func TestDriverMalformedPayload(t *testing.T) {
	var p models.WeatherPayload
	p.Main.Temp = "25.5"
	fetcher := &mockFetcher{outcome: models.Success(p)}
	var out bytes.Buffer

	code := NewDriver(fetcher, "fake_key", &out, nil).Run(context.Background(), "London")

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if got := out.String(); got != "Error: malformed weather data for London.\n" {
		t.Errorf("unexpected output %q", got)
	}
}
