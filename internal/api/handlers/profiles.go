package handlers

import (
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/services"
)

// Profiles lists the supported transport profiles.
func Profiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := dto.ListProfilesResponse{}
	for _, p := range domain.Profiles() {
		res.Profiles = append(res.Profiles, dto.ProfileResponse{
			DisplayName: p.DisplayName,
			OSRMProfile: p.OSRMProfile,
			Network:     string(p.Network),
			AvgSpeedKmh: p.AvgSpeedKmh,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Streets lists the known road classes in priority order, for building
// street-type filters.
func Streets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string][]string{"streets": services.HighwayClasses()})
}
