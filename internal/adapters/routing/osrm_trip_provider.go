package routing

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

	"github.com/paulmach/orb"
	polyline "github.com/twpayne/go-polyline"
)

// OSRMTripProvider implements the TripRequester port against an OSRM trip
// endpoint. Each request is self-contained; no automatic retry (retry
// policy belongs to callers) and no state between calls beyond the shared
// HTTP client.
type OSRMTripProvider struct {
	session *http.Client
	baseURL string
}

func NewOSRMTripProvider(baseURL string, timeout time.Duration) (*OSRMTripProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base URL is empty")
	}

	return &OSRMTripProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

type tripResponse struct {
	Trips []struct {
		Legs []struct {
			Steps []struct {
				Geometry string `json:"geometry"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"trips"`
}

// RequestTrip encodes coords ((lat, lon) pairs) into the trip URL, issues
// the request, and decodes every leg's every step's sub-polyline into
// route segments. First and last coordinates are fixed as trip source and
// destination.
func (o *OSRMTripProvider) RequestTrip(
	ctx context.Context,
	coords [][]float64,
	profile string,
	roundtrip bool,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.RequestTrip")(&err)

	if len(coords) == 0 {
		return nil, domain.NewValidationError("request trip: coordinate list is empty")
	}

	encoded := string(polyline.EncodeCoords(coords))

	endpoint := fmt.Sprintf("%s/trip/v1/%s/polyline(%s)", o.baseURL, url.PathEscape(profile), url.PathEscape(encoded))
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.TransportBadURL, Err: err}
	}

	q := u.Query()
	q.Set("roundtrip", strconv.FormatBool(roundtrip))
	q.Set("source", "first")
	q.Set("destination", "last")
	q.Set("steps", "true")
	q.Set("geometries", "polyline")
	q.Set("overview", "full")
	q.Set("annotations", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.TransportError{Kind: domain.TransportBadURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &domain.ServiceError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	var tr tripResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("request trip: decode response: %w", err)
	}

	return decodeRoute(tr)
}

// decodeRoute extracts every step geometry, swapping decoded (lat, lon)
// into (lon, lat) for internal geometry. Sub-polylines with fewer than 2
// points are degenerate and dropped.
func decodeRoute(tr tripResponse) (domain.Route, error) {
	var route domain.Route
	for _, trip := range tr.Trips {
		for _, leg := range trip.Legs {
			for _, step := range leg.Steps {
				if step.Geometry == "" {
					continue
				}

				coords, _, err := polyline.DecodeCoords([]byte(step.Geometry))
				if err != nil {
					return nil, fmt.Errorf("request trip: decode step geometry: %w", err)
				}
				if len(coords) < 2 {
					continue
				}

				seg := make(orb.LineString, 0, len(coords))
				for _, c := range coords {
					seg = append(seg, orb.Point{c[1], c[0]})
				}
				route = append(route, seg)
			}
		}
	}

	if len(route) == 0 {
		return nil, domain.ErrNoRouteFound
	}
	return route, nil
}
