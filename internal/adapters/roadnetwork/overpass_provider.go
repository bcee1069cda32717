package roadnetwork

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/paulmach/orb"
)

// OverpassProvider implements the RoadNetworkProvider port against an
// Overpass API instance: a polygon-bounded query for the ways of one
// network category, returned as geographic nodes and edges with raw tags.
type OverpassProvider struct {
	session *http.Client
	baseURL string
}

func NewOverpassProvider(baseURL string, timeout time.Duration) (*OverpassProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("overpass base URL is empty")
	}

	return &OverpassProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}, nil
}

type overpassResponse struct {
	Elements []struct {
		Type     string            `json:"type"`
		Lat      float64           `json:"lat"`
		Lon      float64           `json:"lon"`
		Tags     map[string]string `json:"tags"`
		Geometry []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"geometry"`
	} `json:"elements"`
}

// FetchNetwork returns the nodes and edges of the requested network
// category within region.
func (p *OverpassProvider) FetchNetwork(
	ctx context.Context,
	region orb.Ring,
	kind domain.NetworkKind,
) (_ *domain.RoadNetwork, err error) {
	defer obs.Time(ctx, "overpass.FetchNetwork")(&err)

	if len(region) < 4 {
		return nil, domain.NewValidationError("fetch network: region is not a closed polygon")
	}

	query := buildQuery(region, kind)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("fetch network: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch network: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch network: overpass returned status %d", resp.StatusCode)
	}

	var or overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("fetch network: decode response: %w", err)
	}

	network := &domain.RoadNetwork{}
	for _, el := range or.Elements {
		switch el.Type {
		case "node":
			network.Nodes = append(network.Nodes, orb.Point{el.Lon, el.Lat})
		case "way":
			if len(el.Geometry) < 2 {
				continue
			}
			line := make(orb.LineString, 0, len(el.Geometry))
			for _, g := range el.Geometry {
				line = append(line, orb.Point{g.Lon, g.Lat})
			}
			network.Edges = append(network.Edges, domain.RawRoadSegment{
				Line: line,
				Tags: splitTags(el.Tags),
			})
		}
	}

	return network, nil
}

// buildQuery assembles the Overpass QL statement for the region and
// network category.
func buildQuery(region orb.Ring, kind domain.NetworkKind) string {
	var sb strings.Builder
	for i, pt := range region {
		// The polygon clause is "lat lon lat lon ..."; skip the closing
		// vertex, Overpass closes the ring itself.
		if i == len(region)-1 && pt == region[0] {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.7f %.7f", pt.Lat(), pt.Lon())
	}

	return fmt.Sprintf(
		`[out:json][timeout:60];way["highway"]%s(poly:"%s");out geom;node(w);out skel qt;`,
		kindFilter(kind), sb.String(),
	)
}

// kindFilter narrows the highway selection per network category, mirroring
// the drivable/cyclable/walkable graphs the transport profiles expect.
func kindFilter(kind domain.NetworkKind) string {
	switch kind {
	case domain.NetworkDrive:
		return `["highway"!~"footway|cycleway|path|steps|pedestrian|corridor|bridleway"]`
	case domain.NetworkBike:
		return `["highway"!~"footway|steps|motorway|motorway_link|corridor"]`
	case domain.NetworkWalk:
		return `["highway"!~"motorway|motorway_link"]`
	default:
		return ""
	}
}

// splitTags expands semicolon-separated OSM tag values into multi-valued
// attributes, the form normalization expects.
func splitTags(tags map[string]string) map[string][]string {
	out := make(map[string][]string, len(tags))
	for k, v := range tags {
		parts := strings.Split(v, ";")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				values = append(values, p)
			}
		}
		if len(values) > 0 {
			out[k] = values
		}
	}
	return out
}
