package handlers

import (
	"encoding/json"
	"fmt"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// waypointsFromGeoJSON parses an uploaded FeatureCollection into a
// WaypointSet. Only point features are accepted; feature order becomes the
// waypoint index so results correlate back to the upload.
func waypointsFromGeoJSON(raw json.RawMessage) (domain.WaypointSet, error) {
	if len(raw) == 0 {
		return domain.WaypointSet{}, fmt.Errorf("waypoints are required")
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return domain.WaypointSet{}, fmt.Errorf("parse waypoints: %w", err)
	}

	set := domain.WaypointSet{Frame: domain.FrameGeographic}
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return domain.WaypointSet{}, fmt.Errorf("waypoint feature %d has no geometry", i)
		}
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			return domain.WaypointSet{}, fmt.Errorf("waypoint feature %d is %s, want Point", i, f.Geometry.GeoJSONType())
		}
		set.Points = append(set.Points, domain.Waypoint{
			Index:      i,
			Point:      pt,
			Properties: f.Properties,
		})
	}

	return set, nil
}

// routeToGeoJSON re-expresses a route as a FeatureCollection of line
// features numbered in travel order.
func routeToGeoJSON(route domain.Route) (json.RawMessage, error) {
	fc := geojson.NewFeatureCollection()
	for i, seg := range route {
		f := geojson.NewFeature(seg)
		f.Properties["segment"] = i
		fc.Append(f)
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("encode route: %w", err)
	}
	return raw, nil
}

// uncoveredToGeoJSON re-expresses uncovered waypoints as point features
// with their original attributes and index.
func uncoveredToGeoJSON(points []domain.Waypoint) (json.RawMessage, error) {
	fc := geojson.NewFeatureCollection()
	for _, wp := range points {
		f := geojson.NewFeature(wp.Point)
		for k, v := range wp.Properties {
			f.Properties[k] = v
		}
		f.Properties["waypoint_index"] = wp.Index
		fc.Append(f)
	}

	raw, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("encode uncovered points: %w", err)
	}
	return raw, nil
}

// routeFromGeoJSON restores a stored route FeatureCollection.
func routeFromGeoJSON(raw json.RawMessage) (domain.Route, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("parse stored route: %w", err)
	}

	route := make(domain.Route, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			return nil, fmt.Errorf("stored route feature %d has no geometry", i)
		}
		seg, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("stored route feature %d is %s, want LineString", i, f.Geometry.GeoJSONType())
		}
		route = append(route, seg)
	}
	return route, nil
}
