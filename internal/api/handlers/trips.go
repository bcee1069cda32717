package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/paulmach/orb"
)

type TripHandler struct {
	Network   ports.RoadNetworkProvider
	Requester ports.TripRequester

	// Store is optional; when nil trips are planned but not persisted.
	Store ports.TripStore
}

// Trips dispatches the /trips collection: POST plans a new trip, GET lists
// stored ones.
func (h *TripHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.plan(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// plan validates the request, runs the planning pipeline, and persists the
// outcome when a store is configured.
func (h *TripHandler) plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	waypoints, err := waypointsFromGeoJSON(req.Waypoints)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	profileName := req.Profile
	if profileName == "" {
		profileName = domain.ProfileCar.DisplayName
	}
	profile, err := domain.ProfileByName(profileName)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq := services.PlanTripRequest{
		Waypoints:            waypoints,
		Profile:              profile,
		Roundtrip:            req.Roundtrip,
		Optimize:             req.Optimize,
		AllowedRoadClasses:   req.Streets,
		MaxCoverageDistanceM: req.MaxCoverageDistanceM,
	}

	if svcReq.StartPoint, err = parsePoint(req.StartPoint, "start_point"); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if svcReq.EndPoint, err = parsePoint(req.EndPoint, "end_point"); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Network, h.Requester)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	routeJSON, err := routeToGeoJSON(plan.Route)
	if err != nil {
		log.Printf("encode trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.TripResponse{
		Profile:        profile.DisplayName,
		Roundtrip:      plan.Roundtrip,
		DistanceKm:     plan.Stats.DistanceKm,
		EstimatedHours: plan.Stats.EstimatedHours,
		Route:          routeJSON,
	}

	var uncoveredJSON json.RawMessage
	if plan.Coverage != nil {
		uncoveredJSON, err = uncoveredToGeoJSON(plan.Coverage.Uncovered)
		if err != nil {
			log.Printf("encode uncovered points failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}

		covered := plan.Coverage.CoveredCount
		uncovered := len(plan.Coverage.Uncovered)
		res.CoveredCount = &covered
		res.UncoveredCount = &uncovered
		res.Uncovered = uncoveredJSON
	}

	if h.Store != nil {
		rec := &domain.TripRecord{
			CreatedAt:        time.Now().UTC(),
			Profile:          profile.DisplayName,
			Roundtrip:        plan.Roundtrip,
			DistanceKm:       plan.Stats.DistanceKm,
			EstimatedHours:   plan.Stats.EstimatedHours,
			WaypointsGeoJSON: string(req.Waypoints),
			RouteGeoJSON:     string(routeJSON),
			UncoveredGeoJSON: string(uncoveredJSON),
		}
		if plan.Coverage != nil {
			rec.CoverageDistanceM = &plan.Coverage.MaxDistanceMeters
			rec.CoveredCount = plan.Coverage.CoveredCount
		}

		id, err := h.Store.SaveTrip(r.Context(), rec)
		if err != nil {
			// Planning succeeded; persistence failure should not hide the result.
			log.Printf("save trip failed: %v", err)
		} else {
			res.TripID = id
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "trip persistence is not configured")
		return
	}

	trips, err := h.Store.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripSummaryResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, dto.TripSummaryResponse{
			TripID:         t.TripID,
			CreatedAt:      t.CreatedAt,
			Profile:        t.Profile,
			Roundtrip:      t.Roundtrip,
			DistanceKm:     t.DistanceKm,
			EstimatedHours: t.EstimatedHours,
			CoveredCount:   t.CoveredCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one stored trip with its full geometry.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rec, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	covered := rec.CoveredCount
	res := dto.TripResponse{
		TripID:         rec.TripID,
		Profile:        rec.Profile,
		Roundtrip:      rec.Roundtrip,
		DistanceKm:     rec.DistanceKm,
		EstimatedHours: rec.EstimatedHours,
		Route:          json.RawMessage(rec.RouteGeoJSON),
	}
	if rec.CoverageDistanceM != nil {
		res.CoveredCount = &covered
		res.Uncovered = json.RawMessage(rec.UncoveredGeoJSON)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Coverage recomputes coverage for a stored trip at a new tolerance,
// without replanning. The stored route and waypoints are never mutated.
func (h *TripHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rec, ok := h.loadTrip(w, r)
	if !ok {
		return
	}

	var req dto.CoverageRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	waypoints, err := waypointsFromGeoJSON(json.RawMessage(rec.WaypointsGeoJSON))
	if err != nil {
		log.Printf("stored waypoints unreadable for trip %d: %v", rec.TripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	route, err := routeFromGeoJSON(json.RawMessage(rec.RouteGeoJSON))
	if err != nil {
		log.Printf("stored route unreadable for trip %d: %v", rec.TripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	summary, err := services.VerifyCoverage(waypoints, route, req.MaxDistanceM)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	uncoveredJSON, err := uncoveredToGeoJSON(summary.Uncovered)
	if err != nil {
		log.Printf("encode uncovered points failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CoverageResponse{
		TripID:         rec.TripID,
		MaxDistanceM:   summary.MaxDistanceMeters,
		CoveredCount:   summary.CoveredCount,
		UncoveredCount: len(summary.Uncovered),
		Uncovered:      uncoveredJSON,
	})
}

func (h *TripHandler) loadTrip(w http.ResponseWriter, r *http.Request) (*domain.TripRecord, bool) {
	if h.Store == nil {
		writeError(w, r, http.StatusNotFound, "trip persistence is not configured")
		return nil, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return nil, false
	}

	rec, err := h.Store.GetTrip(r.Context(), id)
	if errors.Is(err, domain.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return nil, false
	}
	if err != nil {
		log.Printf("get trip %d failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return rec, true
}

// writePlanError maps the planning error taxonomy onto HTTP statuses,
// keeping enough detail to tell "service unreachable" from "service
// rejected request" from "no points could be routed".
func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusBadRequest, ve.Msg)
		return
	}

	var se *domain.ServiceError
	if errors.As(err, &se) {
		writeJSON(w, r, http.StatusBadGateway, map[string]any{
			"error":           "routing service rejected the request",
			"upstream_status": se.Status,
			"upstream_body":   se.Body,
		})
		return
	}

	var te *domain.TransportError
	if errors.As(err, &te) {
		writeError(w, r, http.StatusBadGateway, "routing service unreachable: "+te.Error())
		return
	}

	if errors.Is(err, domain.ErrNoRouteFound) {
		writeError(w, r, http.StatusUnprocessableEntity, "no valid route found")
		return
	}
	if errors.Is(err, domain.ErrNoUsableWaypoints) {
		writeError(w, r, http.StatusUnprocessableEntity, "no usable waypoints after optimization")
		return
	}

	log.Printf("plan trip failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func parsePoint(coords []float64, field string) (*orb.Point, error) {
	if coords == nil {
		return nil, nil
	}
	if len(coords) != 2 {
		return nil, errors.New(field + " must be [lon, lat]")
	}
	return &orb.Point{coords[0], coords[1]}, nil
}
