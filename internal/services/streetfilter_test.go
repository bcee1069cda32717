package services

import (
	"strings"
	"testing"
	"trip-planner-service/internal/domain"

	"github.com/paulmach/orb"
)

func rawSegment(tags map[string][]string) domain.RawRoadSegment {
	return domain.RawRoadSegment{
		Line: orb.LineString{{9.0, 45.0}, {9.001, 45.0}},
		Tags: tags,
	}
}

func TestNormalizeSegmentHighwayPriority(t *testing.T) {
	seg, err := NormalizeSegment(rawSegment(map[string][]string{
		"highway": {"residential", "motorway", "unclassified"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Highway != "motorway" {
		t.Fatalf("highway = %q, want motorway", seg.Highway)
	}
}

func TestNormalizeSegmentScalarHighwayPassesThrough(t *testing.T) {
	seg, err := NormalizeSegment(rawSegment(map[string][]string{
		"highway": {"bridleway"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Highway != "bridleway" {
		t.Fatalf("highway = %q, want bridleway", seg.Highway)
	}
}

func TestNormalizeSegmentMaxSpeedTakesMaximum(t *testing.T) {
	seg, err := NormalizeSegment(rawSegment(map[string][]string{
		"maxspeed": {"30", "50", "20"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.MaxSpeedKmh != 50 {
		t.Fatalf("maxspeed = %v, want 50", seg.MaxSpeedKmh)
	}
}

func TestNormalizeSegmentNonNumericMaxSpeed(t *testing.T) {
	_, err := NormalizeSegment(rawSegment(map[string][]string{
		"maxspeed": {"30", "none"},
	}))
	if err == nil {
		t.Fatal("expected an error for non-numeric maxspeed")
	}
	if !strings.Contains(err.Error(), "none") {
		t.Fatalf("error %q should name the offending value", err)
	}
}

func TestNormalizeSegmentOtherTags(t *testing.T) {
	seg, err := NormalizeSegment(rawSegment(map[string][]string{
		"name":    {"Via Roma", "Corso Italia"},
		"surface": {"asphalt"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seg.Tags["name"] != "Via Roma; Corso Italia" {
		t.Fatalf("name = %q", seg.Tags["name"])
	}
	if seg.Tags["surface"] != "asphalt" {
		t.Fatalf("surface = %q", seg.Tags["surface"])
	}
}

func TestNormalizeNetworkReportsEdgeIndex(t *testing.T) {
	edges := []domain.RawRoadSegment{
		rawSegment(map[string][]string{"highway": {"residential"}}),
		rawSegment(map[string][]string{"maxspeed": {"fast"}}),
	}

	_, err := NormalizeNetwork(edges)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "edge 1") {
		t.Fatalf("error %q should name the failing edge", err)
	}
}

func TestHighwayClassesIsACopy(t *testing.T) {
	classes := HighwayClasses()
	if len(classes) == 0 || classes[0] != "motorway" {
		t.Fatalf("unexpected class order: %v", classes)
	}

	classes[0] = "mutated"
	if HighwayClasses()[0] != "motorway" {
		t.Fatal("mutating the returned slice leaked into the priority table")
	}
}
