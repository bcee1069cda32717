package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"trip-planner-service/internal/adapters/roadnetwork"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// tripctl plans a single trip from the command line: it reads waypoint
// features from a GeoJSON file, runs the planning pipeline against live
// OSRM and Overpass endpoints, and writes the route (and any uncovered
// waypoints) as GeoJSON files.
func main() {
	var (
		inputPath   = flag.String("input", "", "GeoJSON FeatureCollection of waypoint points (required)")
		outDir      = flag.String("out", ".", "directory for output GeoJSON files")
		profileName = flag.String("profile", "Car", "transport profile: Car, Bike or Foot")
		roundtrip   = flag.Bool("roundtrip", true, "return to the first waypoint")
		optimize    = flag.Bool("optimize", false, "reduce waypoints to one representative per nearby street")
		streets     = flag.String("streets", "", "comma separated road classes for reduction (empty = all)")
		maxDistance = flag.Float64("max-distance", 0, "coverage distance in meters (0 = skip verification)")
		osrmURL     = flag.String("osrm", "https://router.project-osrm.org", "OSRM base URL")
		overpassURL = flag.String("overpass", "https://overpass-api.de", "Overpass base URL")
		timeout     = flag.Duration("timeout", 3*time.Minute, "overall planning timeout")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	profile, err := domain.ProfileByName(*profileName)
	if err != nil {
		log.Fatal(err)
	}

	waypoints, err := readWaypoints(*inputPath)
	if err != nil {
		log.Fatal(err)
	}

	tripRequester, err := routing.NewOSRMTripProvider(*osrmURL, 60*time.Second)
	if err != nil {
		log.Fatal(err)
	}
	networkProvider, err := roadnetwork.NewOverpassProvider(*overpassURL, 90*time.Second)
	if err != nil {
		log.Fatal(err)
	}

	req := services.PlanTripRequest{
		Waypoints: waypoints,
		Profile:   profile,
		Roundtrip: *roundtrip,
		Optimize:  *optimize,
	}
	if *streets != "" {
		for _, class := range strings.Split(*streets, ",") {
			req.AllowedRoadClasses = append(req.AllowedRoadClasses, strings.TrimSpace(class))
		}
	}
	if *maxDistance > 0 {
		req.MaxCoverageDistanceM = maxDistance
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	plan, err := services.PlanTrip(ctx, req, networkProvider, tripRequester)
	if err != nil {
		log.Fatal(err)
	}

	routePath := filepath.Join(*outDir, "trip.geojson")
	if err := writeRoute(routePath, plan.Route); err != nil {
		log.Fatal(err)
	}
	log.Printf("Route written path=%s segments=%d distance_km=%.2f eta_hours=%.2f",
		routePath, len(plan.Route), plan.Stats.DistanceKm, plan.Stats.EstimatedHours)

	if plan.Coverage != nil {
		log.Printf("Coverage covered=%d/%d max_distance_m=%.1f",
			plan.Coverage.CoveredCount, len(plan.Coverage.PerPoint), plan.Coverage.MaxDistanceMeters)
		if len(plan.Coverage.Uncovered) > 0 {
			uncoveredPath := filepath.Join(*outDir, "uncovered.geojson")
			if err := writeUncovered(uncoveredPath, plan.Coverage.Uncovered); err != nil {
				log.Fatal(err)
			}
			log.Printf("Uncovered waypoints written path=%s count=%d", uncoveredPath, len(plan.Coverage.Uncovered))
		}
	}
}

func readWaypoints(path string) (domain.WaypointSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.WaypointSet{}, fmt.Errorf("read waypoints file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return domain.WaypointSet{}, fmt.Errorf("parse waypoints file %q: %w", path, err)
	}

	set := domain.WaypointSet{Frame: domain.FrameGeographic}
	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			return domain.WaypointSet{}, fmt.Errorf("parse waypoints file %q: feature %d has no geometry", path, i)
		}
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			return domain.WaypointSet{}, fmt.Errorf("parse waypoints file %q: feature %d is %s, want Point",
				path, i, feature.Geometry.GeoJSONType())
		}
		set.Points = append(set.Points, domain.Waypoint{Index: i, Point: point, Properties: feature.Properties})
	}
	if len(set.Points) == 0 {
		return domain.WaypointSet{}, fmt.Errorf("parse waypoints file %q: no point features", path)
	}
	return set, nil
}

func writeRoute(path string, route domain.Route) error {
	fc := geojson.NewFeatureCollection()
	for i, line := range route {
		feature := geojson.NewFeature(line)
		feature.Properties = geojson.Properties{"segment": i}
		fc.Append(feature)
	}
	return writeCollection(path, fc)
}

func writeUncovered(path string, points []domain.Waypoint) error {
	fc := geojson.NewFeatureCollection()
	for _, wp := range points {
		feature := geojson.NewFeature(wp.Point)
		feature.Properties = geojson.Properties{"waypoint_index": wp.Index}
		fc.Append(feature)
	}
	return writeCollection(path, fc)
}

func writeCollection(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
