package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"holiday_planner/internal/app"
	"holiday_planner/internal/domain"
)

type Handlers struct {
	Plan    *app.PlanService
	History *app.HistoryService
	Loyalty *app.LoyaltyService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/trips/plan", h.planTrip)
	s.mux.Get("/v1/trips/history", h.listHistory)
	s.mux.Post("/v1/loyalty/evaluate", h.evaluateLoyalty)
	s.mux.Get("/v1/loyalty/programs", h.listPrograms)
}

// ---- request/response shapes ----

type planRequest struct {
	Destination string             `json:"destination"`
	DateRange   []string           `json:"date_range"` // [start, end], YYYY-MM-DD
	Travelers   int                `json:"travelers"`
	Preferences domain.Preferences `json:"preferences"`
	Loyalty     *struct {
		Program string `json:"program"`
		Balance int    `json:"balance"`
	} `json:"loyalty,omitempty"`
}

type planResponse struct {
	RequestID   string               `json:"request_id"`
	Packages    []domain.TripPackage `json:"packages"`
	GeneratedAt time.Time            `json:"generated_at"`
}

type loyaltyRequest struct {
	CashPrice   float64 `json:"cash_price"`
	PointsPrice int     `json:"points_price"`
	Program     string  `json:"program"`
	Balance     int     `json:"balance"`
}

func (r planRequest) toIntent() (domain.TripIntent, error) {
	if len(r.DateRange) != 2 {
		return domain.TripIntent{}, errors.New("date_range must be [start, end]")
	}
	start, err := time.Parse("2006-01-02", r.DateRange[0])
	if err != nil {
		return domain.TripIntent{}, err
	}
	end, err := time.Parse("2006-01-02", r.DateRange[1])
	if err != nil {
		return domain.TripIntent{}, err
	}
	it := domain.TripIntent{
		Destination: r.Destination,
		RangeStart:  start,
		RangeEnd:    end,
		Travelers:   r.Travelers,
		Prefs:       r.Preferences,
	}
	if it.Prefs.MinDuration == 0 && it.Prefs.MaxDuration == 0 {
		it.Prefs.MinDuration, it.Prefs.MaxDuration = 3, 5
	}
	if r.Loyalty != nil {
		it.LoyaltyProgram = r.Loyalty.Program
		it.PointsBalance = r.Loyalty.Balance
	}
	return it, nil
}

// ---- handlers ----

func (h *Handlers) planTrip(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	it, err := req.toIntent()
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Intent", err.Error())
		return
	}

	rec, err := h.Plan.PlanTrip(r.Context(), it)
	switch {
	case errors.Is(err, domain.ErrInvalidIntent):
		writeProblem(w, http.StatusBadRequest, "Invalid Intent", err.Error())
		return
	case errors.Is(err, domain.ErrNoCandidates):
		writeProblem(w, http.StatusNotFound, "No Packages", "no candidates available for this intent")
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Plan Failed", "")
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		RequestID:   rec.ID,
		Packages:    rec.Packages,
		GeneratedAt: rec.GeneratedAt,
	})
}

func (h *Handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	recs, err := h.History.ListRecent(r.Context(), limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "History Unavailable", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": recs})
}

func (h *Handlers) evaluateLoyalty(w http.ResponseWriter, r *http.Request) {
	var req loyaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	ev, err := h.Loyalty.Evaluate(req.CashPrice, req.PointsPrice, req.Program, req.Balance)
	switch {
	case errors.Is(err, domain.ErrUnknownProgram):
		writeProblem(w, http.StatusNotFound, "Unknown Program", err.Error())
		return
	case errors.Is(err, domain.ErrInvalidIntent):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
		return
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Evaluation Failed", "")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *Handlers) listPrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"programs": h.Loyalty.Programs()})
}

// ---- writers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}
