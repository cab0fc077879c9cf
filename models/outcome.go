package models

// Outcome is the result of a fetch: either a payload or nothing.
// The zero value is Absent.
type Outcome struct {
	payload WeatherPayload
	present bool
}

// Success wraps a decoded payload
func Success(p WeatherPayload) Outcome {
	return Outcome{payload: p, present: true}
}

// Absent reports that no weather data could be retrieved
func Absent() Outcome {
	return Outcome{}
}

// Payload returns the payload and whether one is present
func (o Outcome) Payload() (WeatherPayload, bool) {
	return o.payload, o.present
}

// IsAbsent reports whether the outcome carries no data
func (o Outcome) IsAbsent() bool {
	return !o.present
}
