package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"current-weather/config"
	"current-weather/datasource"
	"current-weather/presenter"

	"go.uber.org/zap"
)

// Driver runs one lookup: credential check, fetch, then format or report
type Driver struct {
	fetcher datasource.Fetcher
	apiKey  string
	out     io.Writer
	logger  *zap.Logger
}

// NewDriver creates a driver printing to out
func NewDriver(fetcher datasource.Fetcher, apiKey string, out io.Writer, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		fetcher: fetcher,
		apiKey:  apiKey,
		out:     out,
		logger:  logger,
	}
}

// Run prints exactly one line for the city and returns the process exit code
func (d *Driver) Run(ctx context.Context, city string) int {
	if d.apiKey == "" {
		fmt.Fprintf(d.out, "Error: %s.\n", config.ErrMissingAPIKey)
		return 1
	}

	payload, ok := d.fetcher.Fetch(ctx, city, d.apiKey).Payload()
	if !ok {
		fmt.Fprintf(d.out, "Could not retrieve weather data for %s.\n", city)
		return 1
	}

	line, err := presenter.FormatWeather(payload)
	if err != nil {
		d.logger.Error("Cannot display weather data", zap.String("city", city), zap.Error(err))
		if errors.Is(err, presenter.ErrMalformedPayload) {
			fmt.Fprintf(d.out, "Error: malformed weather data for %s.\n", city)
		} else {
			fmt.Fprintf(d.out, "Error: %v\n", err)
		}
		return 1
	}

	fmt.Fprintln(d.out, line)
	return 0
}
