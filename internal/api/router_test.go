package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trip-planner-service/internal/adapters/travelapi"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/export"
	"trip-planner-service/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripFixture(dest string, titles ...string) domain.Itinerary {
	days := make([]domain.DayPlan, 0, len(titles))
	for i, title := range titles {
		days = append(days, domain.DayPlan{
			Day:        i + 1,
			Title:      title,
			Activities: []domain.Activity{{Time: "10:00", Activity: "Walk", Description: "Old town"}},
		})
	}
	return domain.Itinerary{Destination: dest, Duration: len(titles), TotalBudget: 2000, DailyItinerary: days}
}

type stubLookup struct{}

func (stubLookup) FlightPrices(ctx context.Context, destination, origin string) (domain.FlightPrices, error) {
	return domain.FlightPrices{Origin: origin, Destination: destination, Economy: 400}, nil
}

func (stubLookup) LiveEvents(ctx context.Context, destination string) ([]domain.Event, error) {
	return []domain.Event{{Name: "Fado night"}}, nil
}

func (stubLookup) Weather(ctx context.Context, destination string) (domain.Weather, error) {
	return domain.Weather{}, &domain.ServiceError{Op: "stub.Weather", Status: 503}
}

func (stubLookup) HotelPrices(ctx context.Context, destination string) (domain.HotelPrices, error) {
	return domain.HotelPrices{Budget: 90}, nil
}

func newTestRouter(t *testing.T, gen *travelapi.MockGenerator) http.Handler {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	sessions := services.NewSessions(func(ctx context.Context, id string) *services.Session {
		p := services.NewPlanner(id, gen, nil)
		return &services.Session{
			Planner: p,
			Exports: services.NewExports(p, export.NewLocalPDFRenderer(), export.NewPostcardRenderer(nil, nil), nil, nil),
		}
	})

	return NewRouter(Deps{
		Sessions:       sessions,
		Lookup:         stubLookup{},
		Catalog:        cat,
		Provider:       "local",
		DefaultOrigin:  "New York",
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func do(t *testing.T, h http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(sessionIDHeader, session)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, travelapi.NewMockGenerator(nil))

	rec := do(t, h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "local", decodeBody(t, rec)["provider"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestPlanLifecycle(t *testing.T) {
	gen := travelapi.NewMockGenerator(map[string]travelapi.MockResponse{
		"Lisbon": {Itinerary: tripFixture("Lisbon", "Alfama", "Belem")},
	})
	h := newTestRouter(t, gen)
	sid := uuid.NewString()

	rec := do(t, h, http.MethodGet, "/plans/current/export/text", sid, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/plans", sid, `{"destination":"Lisbon","days":2,"interests":["food"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["state"])
	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 2, summary["totalActivities"])
	assert.Equal(t, []any{"Alfama", "Belem"}, summary["highlights"])

	require.Len(t, gen.Calls(), 1)
	assert.Equal(t, "New York", gen.Calls()[0].Origin)

	rec = do(t, h, http.MethodGet, "/plans/current", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	it := decodeBody(t, rec)["itinerary"].(map[string]any)
	assert.Equal(t, "Lisbon", it["destination"])

	rec = do(t, h, http.MethodGet, "/plans/current/export/text", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Lisbon-itinerary.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "TRIP ITINERARY: Lisbon")

	rec = do(t, h, http.MethodGet, "/plans/current/share", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "My Lisbon Trip", decodeBody(t, rec)["title"])

	rec = do(t, h, http.MethodGet, "/plans/current/postcard?theme=spring&ai=false", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "illustrated", rec.Header().Get("X-Postcard-Scene"))
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = do(t, h, http.MethodGet, "/plans/current/exports", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	exports := decodeBody(t, rec)["exports"].(map[string]any)
	assert.Equal(t, "done", exports["text"].(map[string]any)["state"])
	assert.Equal(t, "idle", exports["pdf"].(map[string]any)["state"])

	rec = do(t, h, http.MethodGet, "/plans/current", uuid.NewString(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decodeBody(t, rec)["state"])

	rec = do(t, h, http.MethodDelete, "/plans/current", sid, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/plans/current", sid, "")
	body = decodeBody(t, rec)
	assert.Equal(t, "idle", body["state"])
	assert.NotContains(t, body, "itinerary")
}

func TestShareQRSizeIsBounded(t *testing.T) {
	gen := travelapi.NewMockGenerator(map[string]travelapi.MockResponse{
		"Lisbon": {Itinerary: tripFixture("Lisbon", "Alfama")},
	})
	h := newTestRouter(t, gen)
	sid := uuid.NewString()

	rec := do(t, h, http.MethodPost, "/plans", sid, `{"destination":"Lisbon","days":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/plans/current/share?format=qr&size=100000", sid, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
}

func TestPlanSubmitFailures(t *testing.T) {
	gen := travelapi.NewMockGenerator(map[string]travelapi.MockResponse{
		"Atlantis": {Err: &domain.ServiceError{Op: "test", Status: 503, Message: "down"}},
	})
	h := newTestRouter(t, gen)
	sid := uuid.NewString()

	rec := do(t, h, http.MethodPost, "/plans", sid, `{"destination":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeBody(t, rec)["code"])

	rec = do(t, h, http.MethodPost, "/plans", sid, `{"destination":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_destination", decodeBody(t, rec)["code"])
	assert.Empty(t, gen.Calls())

	rec = do(t, h, http.MethodPost, "/plans", sid, `{"destination":"Atlantis"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "service", body["kind"])
	assert.Equal(t, true, body["retriable"])

	rec = do(t, h, http.MethodGet, "/plans/current", sid, "")
	body = decodeBody(t, rec)
	assert.Equal(t, "failed", body["state"])
	assert.Equal(t, "service", body["error"].(map[string]any)["kind"])
}

func TestPlanSupersededAnswersConflict(t *testing.T) {
	release := make(chan struct{})
	gen := travelapi.NewMockGenerator(map[string]travelapi.MockResponse{
		"Paris": {Itinerary: tripFixture("Paris", "Louvre"), Release: release},
		"Tokyo": {Itinerary: tripFixture("Tokyo", "Shibuya")},
	})
	h := newTestRouter(t, gen)
	sid := uuid.NewString()

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- do(t, h, http.MethodPost, "/plans", sid, `{"destination":"Paris"}`)
	}()
	require.Eventually(t, func() bool { return len(gen.Calls()) == 1 }, time.Second, time.Millisecond)

	rec := do(t, h, http.MethodPost, "/plans", sid, `{"destination":"Tokyo"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	close(release)
	stale := <-first
	assert.Equal(t, http.StatusConflict, stale.Code)
	assert.Equal(t, "superseded", decodeBody(t, stale)["kind"])

	rec = do(t, h, http.MethodGet, "/plans/current", sid, "")
	it := decodeBody(t, rec)["itinerary"].(map[string]any)
	assert.Equal(t, "Tokyo", it["destination"])
}

func TestSessionCookieIssued(t *testing.T) {
	h := newTestRouter(t, travelapi.NewMockGenerator(nil))

	rec := do(t, h, http.MethodGet, "/plans/current", "not-a-uuid", "")
	require.Equal(t, http.StatusOK, rec.Code)

	sid := rec.Header().Get(sessionIDHeader)
	_, err := uuid.Parse(sid)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, sid, cookies[0].Value)
}

func TestDestinationSearchPartial(t *testing.T) {
	h := newTestRouter(t, travelapi.NewMockGenerator(nil))

	rec := do(t, h, http.MethodGet, "/destinations/search?destination=Lisbon", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "New York", body["origin"])
	assert.Contains(t, body["unavailable"], "weather")
	assert.NotContains(t, body, "weather")
	assert.Contains(t, body, "flights")

	rec = do(t, h, http.MethodGet, "/destinations/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestRouter(t, travelapi.NewMockGenerator(nil))

	rec := do(t, h, http.MethodGet, "/themes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["themes"], 5)

	rec = do(t, h, http.MethodGet, "/landmarks", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["landmarks"], 3)

	rec = do(t, h, http.MethodGet, "/surprise", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["destination"])
	assert.NotEmpty(t, body["imageUrl"])
}

func TestDetectOriginRejectsBadQuery(t *testing.T) {
	h := newTestRouter(t, travelapi.NewMockGenerator(nil))

	rec := do(t, h, http.MethodGet, "/origin/detect?lat=abc&lon=1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_coordinates", decodeBody(t, rec)["code"])
}
