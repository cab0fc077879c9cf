package models

import (
	"encoding/json"
)

// Condition is a single entry of the "weather" list returned by OpenWeatherMap
type Condition struct {
	Description string `json:"description"`
}

// WeatherPayload holds the parts of a current weather response that are displayed
type WeatherPayload struct {
	Weather []Condition `json:"weather"`
	Main    struct {
		Temp json.Number `json:"temp"` // kept as written by the API, in Celsius
	} `json:"main"`

	// Raw is the response body the payload was decoded from
	Raw json.RawMessage `json:"-"`
}

// WeatherQuery identifies a single current weather lookup
type WeatherQuery struct {
	City   string
	APIKey string
}
