package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Secondary lookups shown next to a destination. Each comes from its own
// endpoint and may be missing independently of the others.

type FlightPrices struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Economy     Amount `json:"economy"`
	Premium     Amount `json:"premium"`
	Business    Amount `json:"business"`
}

type HotelPrices struct {
	Budget   Amount `json:"budget"`
	Standard Amount `json:"standard"`
	Luxury   Amount `json:"luxury"`
}

type Weather struct {
	Temperature Text `json:"temperature"`
	Condition   Text `json:"condition"`
	Humidity    Text `json:"humidity"`
	Wind        Text `json:"wind"`
}

type Event struct {
	Name        string `json:"name"`
	Venue       string `json:"venue"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type EventList struct {
	Events []Event `json:"events"`
}

// Text accepts either a JSON string or a number ("25°C" or 25).
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Landmark is a curated scene a user photo can be composited into.
type Landmark struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	City               string `json:"city" yaml:"city"`
	BackgroundImageURL string `json:"backgroundImageUrl" yaml:"background_image_url"`
}
