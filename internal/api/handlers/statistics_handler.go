package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	api "historian/internal/api/application"
	sharedlogger "historian/internal/shared/logger"
)

// StatisticsHandler serves the statistics history
type StatisticsHandler struct {
	service *api.StatisticsService
	logger  sharedlogger.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(service *api.StatisticsService, logger sharedlogger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		logger:  logger,
	}
}

// ListRaw handles GET /api/v1/statistics/raw
// @Summary      List raw samples
// @Description  Get raw statistics samples, newest first
// @Tags         statistics
// @Accept       json
// @Produce      json
// @Param        node    query     string  false  "Filter by node id"
// @Param        from    query     string  false  "Start time (RFC3339 or epoch seconds)"
// @Param        to      query     string  false  "End time (RFC3339 or epoch seconds)"
// @Param        limit   query     int     false  "Limit results (default 100, max 1000)"
// @Param        offset  query     int     false  "Offset results"
// @Success      200     {array}   domain.RawSample
// @Failure      400     {object}  application.ErrorResponse
// @Failure      500     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /statistics/raw [get]
func (h *StatisticsHandler) ListRaw(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "raw", h.service.ListRaw)
}

// ListPerSecond handles GET /api/v1/statistics/per-second
// @Summary      List per-second samples
// @Description  Get per-second rates and distributions, newest first
// @Tags         statistics
// @Accept       json
// @Produce      json
// @Param        node    query     string  false  "Filter by node id"
// @Param        from    query     string  false  "Start time (RFC3339 or epoch seconds)"
// @Param        to      query     string  false  "End time (RFC3339 or epoch seconds)"
// @Param        limit   query     int     false  "Limit results (default 100, max 1000)"
// @Param        offset  query     int     false  "Offset results"
// @Success      200     {array}   domain.PerSecondSample
// @Failure      400     {object}  application.ErrorResponse
// @Failure      500     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /statistics/per-second [get]
func (h *StatisticsHandler) ListPerSecond(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "per-second", h.service.ListPerSecond)
}

// ListWindow handles GET /api/v1/statistics/window
// @Summary      List window samples
// @Description  Get windowed averages, newest first
// @Tags         statistics
// @Accept       json
// @Produce      json
// @Param        node    query     string  false  "Filter by node id"
// @Param        from    query     string  false  "Start time (RFC3339 or epoch seconds)"
// @Param        to      query     string  false  "End time (RFC3339 or epoch seconds)"
// @Param        limit   query     int     false  "Limit results (default 100, max 1000)"
// @Param        offset  query     int     false  "Offset results"
// @Success      200     {array}   domain.WindowSample
// @Failure      400     {object}  application.ErrorResponse
// @Failure      500     {object}  application.ErrorResponse
// @Security     ApiKeyAuth
// @Router       /statistics/window [get]
func (h *StatisticsHandler) ListWindow(w http.ResponseWriter, r *http.Request) {
	list(h, w, r, "window", h.service.ListWindow)
}

// Settings handles GET /api/v1/statistics/settings
// @Summary      Get statistics settings
// @Description  Get the sampling and window intervals and the distribution cut tables
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  application.SettingsResponse
// @Security     ApiKeyAuth
// @Router       /statistics/settings [get]
func (h *StatisticsHandler) Settings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Settings())
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, api.HealthResponse{Status: "ok", Time: time.Now().UTC()})
}

func list[T any](h *StatisticsHandler, w http.ResponseWriter, r *http.Request, kind string, fetch func(context.Context, api.ListStatisticsRequest) ([]T, error)) {
	req, err := parseListRequest(r)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	samples, err := fetch(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to list statistics", "kind", kind, "err", err)
		respondJSONError(w, http.StatusInternalServerError, "Failed to list statistics: "+err.Error())
		return
	}

	h.logger.Debug("Listed statistics", "kind", kind, "count", len(samples))
	respondJSON(w, http.StatusOK, samples)
}

func parseListRequest(r *http.Request) (api.ListStatisticsRequest, error) {
	query := r.URL.Query()
	req := api.ListStatisticsRequest{}

	if node := query.Get("node"); node != "" {
		req.NodeID = &node
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := parseTime(fromStr)
		if err != nil {
			return req, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if toStr := query.Get("to"); toStr != "" {
		to, err := parseTime(toStr)
		if err != nil {
			return req, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	if req.From != nil && req.To != nil && *req.From > *req.To {
		return req, errors.New("from must not be after to")
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return req, errors.New("limit must be a positive integer")
		}
		req.Limit = limit
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return req, errors.New("offset must be a non-negative integer")
		}
		req.Offset = offset
	}

	return req, nil
}
