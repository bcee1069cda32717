package services

import (
	"fmt"
	"strconv"
	"strings"
	"trip-planner-service/internal/domain"
)

// highwayPriority orders road classes from most to least important. When a
// segment carries several candidate classes, the highest-priority one
// present wins.
var highwayPriority = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street", "road",
	"motorway_link", "trunk_link", "primary_link", "secondary_link",
	"tertiary_link", "rest_area", "crossing",
}

// HighwayClasses returns the known road classes in priority order.
func HighwayClasses() []string {
	return append([]string(nil), highwayPriority...)
}

// NormalizeSegment reduces a raw segment's attributes to one canonical
// value per key: the road class by priority ranking, the speed limit by
// numeric maximum, and any remaining multi-valued tag by lossy
// serialization to a single descriptive string.
func NormalizeSegment(raw domain.RawRoadSegment) (domain.RoadSegment, error) {
	seg := domain.RoadSegment{
		Line: raw.Line,
		Tags: make(map[string]string, len(raw.Tags)),
	}

	for key, values := range raw.Tags {
		if len(values) == 0 {
			continue
		}

		switch key {
		case "highway":
			seg.Highway = selectHighway(values)
		case "maxspeed":
			speed, err := selectMaxSpeed(values)
			if err != nil {
				return domain.RoadSegment{}, fmt.Errorf("normalize segment: %w", err)
			}
			seg.MaxSpeedKmh = speed
		default:
			if len(values) == 1 {
				seg.Tags[key] = values[0]
			} else {
				// Lossy, display only; never consumed for filtering.
				seg.Tags[key] = strings.Join(values, "; ")
			}
		}
	}

	return seg, nil
}

// NormalizeNetwork applies NormalizeSegment to every edge.
func NormalizeNetwork(edges []domain.RawRoadSegment) ([]domain.RoadSegment, error) {
	out := make([]domain.RoadSegment, 0, len(edges))
	for i, raw := range edges {
		seg, err := NormalizeSegment(raw)
		if err != nil {
			return nil, fmt.Errorf("normalize network: edge %d: %w", i, err)
		}
		out = append(out, seg)
	}
	return out, nil
}

// selectHighway picks the highest-priority class among the candidates.
// A scalar value passes through unchanged; multiple candidates with no
// known class keep the first one.
func selectHighway(values []string) string {
	if len(values) == 1 {
		return values[0]
	}
	for _, class := range highwayPriority {
		for _, v := range values {
			if v == class {
				return class
			}
		}
	}
	return values[0]
}

// selectMaxSpeed picks the numerically greatest candidate and coerces it
// to a number. A non-numeric value is a data error.
func selectMaxSpeed(values []string) (float64, error) {
	best := 0.0
	for i, v := range values {
		speed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric maxspeed %q", v)
		}
		if i == 0 || speed > best {
			best = speed
		}
	}
	return best, nil
}
