package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/posest/internal/metrics"
	"github.com/erazemk/posest/internal/model"
	"github.com/erazemk/posest/internal/service"
)

// CheckupsHandler handles checkup endpoints.
type CheckupsHandler struct {
	Checkups *service.CheckupService
}

type createCheckupRequest struct {
	CheckupType    model.CheckupType `json:"checkup_type"`
	IntervalMonths *int              `json:"interval_months"`
}

type updateIntervalRequest struct {
	IntervalMonths *int `json:"interval_months"`
}

func checkupID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func checkupNotFound(w http.ResponseWriter) {
	jsonError(w, http.StatusNotFound, "Checkup not found")
}

// List handles GET /checkups.
func (h *CheckupsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	checkupType := model.CheckupType(r.URL.Query().Get("checkup_type"))

	checkups, err := h.Checkups.ListForOwner(r.Context(), claims.UserID, checkupType)
	if err != nil {
		serviceError(w, err, "list checkups")
		return
	}

	now := h.Checkups.Now()
	resp := make([]checkupResponse, 0, len(checkups))
	for i := range checkups {
		resp = append(resp, newCheckupResponse(&checkups[i], now))
	}
	jsonResponse(w, http.StatusOK, resp)
}

// Create handles POST /checkups. An empty body creates a monthly keep checkup.
func (h *CheckupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createCheckupRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Checkups.Create(r.Context(), claims.UserID, req.CheckupType, req.IntervalMonths)
	if err != nil {
		serviceError(w, err, "create checkup")
		return
	}

	slog.Info("checkup created", "user", claims.Username, "checkup", c.ID, "interval_months", c.IntervalMonths)
	jsonResponse(w, http.StatusCreated, newCheckupResponse(c, h.Checkups.Now()))
}

// Get handles GET /checkups/{id}.
func (h *CheckupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := checkupID(r)
	if !ok {
		checkupNotFound(w)
		return
	}

	c, err := h.Checkups.Get(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, err, "get checkup")
		return
	}
	if c == nil {
		checkupNotFound(w)
		return
	}

	jsonResponse(w, http.StatusOK, newCheckupResponse(c, h.Checkups.Now()))
}

// UpdateInterval handles PUT /checkups/{id}/interval.
func (h *CheckupsHandler) UpdateInterval(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := checkupID(r)
	if !ok {
		checkupNotFound(w)
		return
	}

	var req updateIntervalRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IntervalMonths == nil {
		jsonError(w, http.StatusBadRequest, "interval_months: required")
		return
	}

	c, err := h.Checkups.UpdateInterval(r.Context(), claims.UserID, id, *req.IntervalMonths)
	if err != nil {
		serviceError(w, err, "update checkup interval")
		return
	}
	if c == nil {
		checkupNotFound(w)
		return
	}

	slog.Info("checkup interval changed", "user", claims.Username, "checkup", c.ID, "interval_months", c.IntervalMonths)
	jsonResponse(w, http.StatusOK, newCheckupResponse(c, h.Checkups.Now()))
}

// Complete handles POST /checkups/{id}/complete.
func (h *CheckupsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, ok := checkupID(r)
	if !ok {
		checkupNotFound(w)
		return
	}

	c, err := h.Checkups.Complete(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, err, "complete checkup")
		return
	}
	if c == nil {
		checkupNotFound(w)
		return
	}

	metrics.CheckupsCompleted.Inc()
	slog.Info("checkup completed", "user", claims.Username, "checkup", c.ID)
	jsonResponse(w, http.StatusOK, newCheckupResponse(c, h.Checkups.Now()))
}
