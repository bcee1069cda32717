package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"trip-planner-service/internal/domain"

	polyline "github.com/twpayne/go-polyline"
)

func stepBody(t *testing.T, geometries ...string) []byte {
	t.Helper()
	steps := make([]map[string]any, 0, len(geometries))
	for _, g := range geometries {
		steps = append(steps, map[string]any{"geometry": g})
	}
	body, err := json.Marshal(map[string]any{
		"trips": []map[string]any{{
			"legs": []map[string]any{{"steps": steps}},
		}},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return body
}

func TestRequestTripBuildsTripURL(t *testing.T) {
	var gotURL *url.URL
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL
		w.Write(stepBody(t, string(polyline.EncodeCoords([][]float64{{45, 9}, {45.001, 9.001}}))))
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL+"/", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords := [][]float64{{45, 9}, {45.001, 9.001}}
	if _, err := provider.RequestTrip(context.Background(), coords, "cycling", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "/trip/v1/cycling/polyline(" + string(polyline.EncodeCoords(coords)) + ")"
	if gotURL.Path != wantPath {
		t.Fatalf("path = %q, want %q", gotURL.Path, wantPath)
	}

	q := gotURL.Query()
	for key, want := range map[string]string{
		"roundtrip":   "false",
		"source":      "first",
		"destination": "last",
		"steps":       "true",
		"geometries":  "polyline",
		"overview":    "full",
		"annotations": "true",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}
}

func TestRequestTripDecodesStepGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(stepBody(t,
			string(polyline.EncodeCoords([][]float64{{45, 9}, {45.001, 9.001}})),
			string(polyline.EncodeCoords([][]float64{{45.001, 9.001}, {45.002, 9.0}})),
		))
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route, err := provider.RequestTrip(context.Background(), [][]float64{{45, 9}}, "driving", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route) != 2 {
		t.Fatalf("route has %d segments, want 2", len(route))
	}

	// decoded (lat, lon) pairs become internal (lon, lat) points
	first := route[0][0]
	if first.Lon() != 9 || first.Lat() != 45 {
		t.Fatalf("first point = %v, want lon 9 lat 45", first)
	}
}

func TestRequestTripDropsDegenerateSteps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(stepBody(t,
			string(polyline.EncodeCoords([][]float64{{45, 9}})),
			"",
			string(polyline.EncodeCoords([][]float64{{45, 9}, {45.001, 9.001}})),
		))
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route, err := provider.RequestTrip(context.Background(), [][]float64{{45, 9}}, "driving", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route) != 1 {
		t.Fatalf("route has %d segments, want 1", len(route))
	}
}

func TestRequestTripNoUsableSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"trips":[]}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.RequestTrip(context.Background(), [][]float64{{45, 9}}, "driving", true)
	if !errors.Is(err, domain.ErrNoRouteFound) {
		t.Fatalf("got %v, want ErrNoRouteFound", err)
	}
}

func TestRequestTripServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"InvalidQuery"}`))
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.RequestTrip(context.Background(), [][]float64{{45, 9}}, "driving", true)

	var svcErr *domain.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("got %v, want a service error", err)
	}
	if svcErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", svcErr.Status)
	}
	if !strings.Contains(svcErr.Body, "InvalidQuery") {
		t.Fatalf("body = %q, want upstream body preserved", svcErr.Body)
	}
}

func TestRequestTripTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	provider, err := NewOSRMTripProvider(srv.URL, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.RequestTrip(context.Background(), [][]float64{{45, 9}}, "driving", true)

	var tErr *domain.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("got %v, want a transport error", err)
	}
	if tErr.Kind != domain.TransportTimeout {
		t.Fatalf("kind = %q, want timeout", tErr.Kind)
	}
}

func TestRequestTripEmptyCoordinates(t *testing.T) {
	provider, err := NewOSRMTripProvider("http://localhost:1", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.RequestTrip(context.Background(), nil, "driving", true)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestNewOSRMTripProviderRejectsEmptyURL(t *testing.T) {
	if _, err := NewOSRMTripProvider("   ", time.Second); err == nil {
		t.Fatal("expected an error for an empty base URL")
	}
}
