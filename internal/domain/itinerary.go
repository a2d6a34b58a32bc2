package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Itinerary is the multi-day plan returned by the planning service.
// Once received it is treated as a value: it is replaced wholesale, never
// edited in place.
type Itinerary struct {
	Destination    string         `json:"destination"`
	Duration       int            `json:"duration"`
	TotalBudget    Amount         `json:"totalBudget"`
	BudgetSummary  *BudgetSummary `json:"budgetSummary,omitempty"`
	CostBreakdown  CostBreakdown  `json:"costBreakdown"`
	DailyItinerary []DayPlan      `json:"dailyItinerary"`
	TravelTips     []string       `json:"travelTips"`
	PackingList    []string       `json:"packingList"`
}

type BudgetSummary struct {
	// Nil when the service omitted the field.
	TotalEstimated *Amount `json:"totalEstimated,omitempty"`
}

// DayPlan is one day of an itinerary. Day is 1-based.
type DayPlan struct {
	Day                int               `json:"day"`
	Title              string            `json:"title"`
	Activities         []Activity        `json:"activities"`
	Meals              map[string]string `json:"meals,omitempty"`
	EstimatedDailyCost Amount            `json:"estimatedDailyCost"`
}

type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Cost        Amount `json:"cost"`
	Tips        string `json:"tips,omitempty"`
}

// Validate checks the minimal shape required before an itinerary may be
// installed: a destination and at least one day.
func (it Itinerary) Validate() error {
	if strings.TrimSpace(it.Destination) == "" {
		return errors.New("itinerary: missing destination")
	}
	if len(it.DailyItinerary) == 0 {
		return errors.New("itinerary: no days")
	}
	for i, d := range it.DailyItinerary {
		if d.Day < 1 {
			return fmt.Errorf("itinerary: day at index %d has invalid number %d", i, d.Day)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can hand out an itinerary without
// sharing its slices and maps.
func (it Itinerary) Clone() Itinerary {
	out := it
	if it.BudgetSummary != nil {
		bs := *it.BudgetSummary
		if bs.TotalEstimated != nil {
			v := *bs.TotalEstimated
			bs.TotalEstimated = &v
		}
		out.BudgetSummary = &bs
	}
	out.CostBreakdown = cloneSlice(it.CostBreakdown)
	out.TravelTips = cloneSlice(it.TravelTips)
	out.PackingList = cloneSlice(it.PackingList)

	if it.DailyItinerary != nil {
		out.DailyItinerary = make([]DayPlan, len(it.DailyItinerary))
		for i, d := range it.DailyItinerary {
			dc := d
			dc.Activities = cloneSlice(d.Activities)
			if d.Meals != nil {
				dc.Meals = make(map[string]string, len(d.Meals))
				for k, v := range d.Meals {
					dc.Meals[k] = v
				}
			}
			out.DailyItinerary[i] = dc
		}
	}
	return out
}

// cloneSlice copies s, keeping nil and empty slices distinct.
func cloneSlice[S ~[]E, E any](s S) S {
	if s == nil {
		return nil
	}
	out := make(S, len(s))
	copy(out, s)
	return out
}

// Amount is a US dollar amount. The planning service is inconsistent and
// sends amounts either as numbers or as numeric strings ("25", "$25").
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q is not numeric", s)
		}
		if !finite(f) {
			return fmt.Errorf("amount %q is not a finite number", s)
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if !finite(f) {
		return fmt.Errorf("amount %v is not a finite number", f)
	}
	*a = Amount(f)
	return nil
}

// String formats the amount without trailing zeros ("2000", "12.5").
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// CostItem is one category of a cost breakdown.
type CostItem struct {
	Key    string
	Amount Amount
}

// CostBreakdown keeps the category order of the JSON object it was decoded
// from. It marshals back to a JSON object in the same order.
type CostBreakdown []CostItem

func (c *CostBreakdown) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("cost breakdown: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("cost breakdown: expected object")
	}

	out := CostBreakdown{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("cost breakdown: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("cost breakdown: expected string key")
		}

		var amt Amount
		if err := dec.Decode(&amt); err != nil {
			return fmt.Errorf("cost breakdown %q: %w", key, err)
		}
		out = append(out, CostItem{Key: key, Amount: amt})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("cost breakdown: %w", err)
	}

	*c = out
	return nil
}

func (c CostBreakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(float64(item.Amount), 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the amount for key.
func (c CostBreakdown) Get(key string) (Amount, bool) {
	for _, item := range c {
		if item.Key == key {
			return item.Amount, true
		}
	}
	return 0, false
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
