package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	api "historian/internal/api/application"
	statsdomain "historian/internal/statistics/domain"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondJSONError sends a JSON error response
func respondJSONError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, api.ErrorResponse{Error: message})
}

// parseTime accepts RFC3339 or epoch seconds
func parseTime(value string) (float64, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return statsdomain.Seconds(t), nil
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected RFC3339 or epoch seconds", value)
	}
	return seconds, nil
}
