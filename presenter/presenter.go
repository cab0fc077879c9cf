package presenter

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"current-weather/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMalformedPayload is returned when a payload lacks the fields needed for display
var ErrMalformedPayload = errors.New("malformed weather payload")

// FormatWeather renders a payload as "Current Weather: {Description}, {temp}°C".
// The temperature is printed exactly as the API sent it.
func FormatWeather(p models.WeatherPayload) (string, error) {
	if len(p.Weather) == 0 {
		return "", fmt.Errorf("%w: no weather conditions", ErrMalformedPayload)
	}
	description := p.Weather[0].Description
	if description == "" {
		return "", fmt.Errorf("%w: missing weather description", ErrMalformedPayload)
	}
	if p.Main.Temp == "" {
		return "", fmt.Errorf("%w: missing temperature", ErrMalformedPayload)
	}

	return fmt.Sprintf("Current Weather: %s, %s°C", titleCase(description), p.Main.Temp), nil
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
// A word is a run of cased letters, so "o'clock" becomes "O'Clock" and "3rd" becomes "3Rd".
func titleCase(s string) string {
	caser := cases.Title(language.Und)

	var b strings.Builder
	start := -1
	for i, r := range s {
		if isCased(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
