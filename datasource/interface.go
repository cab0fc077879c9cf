package datasource

import (
	"context"

	"current-weather/models"
)

// Fetcher retrieves current weather for a city.
// Implementations never return transport or HTTP errors; failures are reported as an absent outcome.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, city, apiKey string) models.Outcome
}
