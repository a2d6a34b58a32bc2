package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FallbackPlace is used when a lookup succeeds but names no settlement.
const FallbackPlace = "Your Location"

// NominatimGeocoder resolves coordinates with the public OpenStreetMap
// Nominatim service. The service allows about one request per second per
// client, so calls wait on a shared limiter.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	log       *zap.Logger
}

func NewNominatimGeocoder(baseURL, userAgent string, log *zap.Logger) (*NominatimGeocoder, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("nominatim: base url is empty")
	}
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("nominatim: user agent is required by the usage policy")
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		log:       log,
	}, nil
}

type reverseResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
	} `json:"address"`
	Error string `json:"error"`
}

// ReverseGeocode returns the city, town or village at lat/lon.
func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (_ string, err error) {
	const op = "nominatim.ReverseGeocode"
	defer obs.Time(ctx, g.log, op)(&err)

	if err := (domain.Coordinates{Lat: lat, Lon: lon}).Validate(); err != nil {
		return "", err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", &domain.NetworkError{Op: op, Err: err}
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.session.Do(req)
	if err != nil {
		return "", &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &domain.ServiceError{Op: op, Status: resp.StatusCode, Message: strings.TrimSpace(string(b))}
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &domain.DecodeError{Op: op, Err: err}
	}
	if decoded.Error != "" {
		return "", &domain.ServiceError{Op: op, Status: resp.StatusCode, Message: decoded.Error}
	}

	for _, place := range []string{decoded.Address.City, decoded.Address.Town, decoded.Address.Village} {
		if p := strings.TrimSpace(place); p != "" {
			return p, nil
		}
	}
	return FallbackPlace, nil
}
