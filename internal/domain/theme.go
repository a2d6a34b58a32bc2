package domain

import (
	"image/color"
	"time"
)

// Theme is a seasonal postcard style.
type Theme struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Accent      color.RGBA `json:"-"`
	Secondary   color.RGBA `json:"-"`
	Text        color.RGBA `json:"-"`
	AccentHex   string     `json:"accentColor"`
	Description string     `json:"description"`
	Season      string     `json:"season,omitempty"`
}

const DefaultThemeID = "default"

var themes = []Theme{
	newTheme(DefaultThemeID, "Classic", 0x3B82F6, 0x1E40AF, "Professional travel planning", ""),
	newTheme("halloween", "Halloween", 0xFF6B00, 0x7C2D12, "Spooky adventures await", "October - November"),
	newTheme("christmas", "Christmas", 0xDC2626, 0x15803D, "Festive winter getaways", "November - January"),
	newTheme("summer", "Summer", 0xF59E0B, 0x0EA5E9, "Beach vibes & sunshine", "June - August"),
	newTheme("spring", "Spring", 0xEC4899, 0x10B981, "Bloom into adventure", "March - May"),
}

func newTheme(id, name string, accent, secondary uint32, desc, season string) Theme {
	return Theme{
		ID:          id,
		Name:        name,
		Accent:      rgb(accent),
		Secondary:   rgb(secondary),
		Text:        color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		AccentHex:   hex(accent),
		Description: desc,
		Season:      season,
	}
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

func hex(v uint32) string {
	const digits = "0123456789ABCDEF"
	out := []byte("#000000")
	for i := 6; i >= 1; i-- {
		out[i] = digits[v&0xF]
		v >>= 4
	}
	return string(out)
}

// LookupTheme returns the theme with the given id, or the default theme when
// the id is unknown or empty.
func LookupTheme(id string) Theme {
	for _, t := range themes {
		if t.ID == id {
			return t
		}
	}
	return themes[0]
}

// Themes lists all themes, default first.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// CurrentSeason maps a month to the seasonal theme id.
func CurrentSeason(month time.Month) string {
	switch month {
	case time.October, time.November:
		return "halloween"
	case time.December, time.January, time.February:
		return "christmas"
	case time.June, time.July, time.August:
		return "summer"
	case time.March, time.April, time.May:
		return "spring"
	}
	return DefaultThemeID
}
