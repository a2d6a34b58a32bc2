package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"trip-planner-service/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the curated set of landmarks, destination images, surprise
// destinations and interest tags.
type Catalog struct {
	Landmarks               []domain.Landmark `yaml:"landmarks"`
	DestinationImages       map[string]string `yaml:"destination_images"`
	DefaultDestinationImage string            `yaml:"default_destination_image"`
	SurpriseDestinations    []string          `yaml:"surprise_destinations"`
	Interests               []string          `yaml:"interests"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Landmarks))
	for i, l := range c.Landmarks {
		if strings.TrimSpace(l.ID) == "" {
			return nil, fmt.Errorf("parse catalog: landmark at index %d has no id", i)
		}
		if _, ok := seen[l.ID]; ok {
			return nil, fmt.Errorf("parse catalog: duplicate landmark %q", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return &c, nil
}

func (c *Catalog) Landmark(id string) (domain.Landmark, bool) {
	for _, l := range c.Landmarks {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Landmark{}, false
}

// DestinationImage picks the background image whose keyword appears in the
// destination. Longer keywords win so "new york" beats shorter overlaps.
func (c *Catalog) DestinationImage(destination string) string {
	dest := strings.ToLower(strings.TrimSpace(destination))
	if dest == "" {
		return c.DefaultDestinationImage
	}

	keys := make([]string, 0, len(c.DestinationImages))
	for k := range c.DestinationImages {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		if strings.Contains(dest, k) || strings.Contains(k, dest) {
			return c.DestinationImages[k]
		}
	}
	return c.DefaultDestinationImage
}

// SurpriseForm returns a random trip form: a curated destination, 3-9 days
// and a $1000-$3999 budget.
func (c *Catalog) SurpriseForm(r *rand.Rand) domain.TripForm {
	form := domain.TripForm{
		Days:      r.IntN(7) + 3,
		BudgetUSD: r.IntN(3000) + 1000,
	}
	if len(c.SurpriseDestinations) > 0 {
		form.Destination = c.SurpriseDestinations[r.IntN(len(c.SurpriseDestinations))]
	}
	return form
}
