package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/xtding233/pcg32-backend/internal/logger"
	"github.com/xtding233/pcg32-backend/internal/pcg"
	"github.com/xtding233/pcg32-backend/internal/sample"
)

type stateResp struct {
	State string `json:"state"`
}

type uintsResp struct {
	Values []uint32 `json:"values"`
	State  string   `json:"state"`
}

type floatsResp struct {
	Values []float32 `json:"values"`
	State  string    `json:"state"`
}

type belowResp struct {
	Value uint32 `json:"value"`
	State string `json:"state"`
}

type drawResp struct {
	Hit   bool   `json:"hit"`
	State string `json:"state"`
}

type statsResp struct {
	Stats sample.Stats `json:"stats"`
	State string       `json:"state"`
}

type errResp struct {
	Err string `json:"err"`
}

type httpAPI struct {
	e *Engine
}

// NewHTTPHandler routes the JSON API onto a mux.
func NewHTTPHandler(e *Engine) http.Handler {
	h := &httpAPI{e: e}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /seed", h.handleSeed)
	mux.HandleFunc("GET /next", h.handleNext)
	mux.HandleFunc("GET /next_float", h.handleNextFloat)
	mux.HandleFunc("GET /below", h.handleBelow)
	mux.HandleFunc("GET /draw", h.handleDraw)
	mux.HandleFunc("GET /stats", h.handleStats)
	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Since(logger.Debug(), start).Str("method", r.Method).Str("path", r.URL.Path).Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, pcg.ErrEntropyUnavailable):
		code = http.StatusServiceUnavailable
		logger.Error(err).Msg("seed failed")
	}
	writeJSON(w, code, errResp{Err: err.Error()})
}

func parseInt(r *http.Request, key string) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, badParam(key)
	}
	return v, nil
}

func parseFloat(r *http.Request, key string) (float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, missingParam(key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, badParam(key)
	}
	return v, nil
}

func (h *httpAPI) state(r *http.Request) (pcg.State, error) {
	return h.e.ParseState(r.URL.Query().Get("state"))
}

func (h *httpAPI) handleSeed(w http.ResponseWriter, r *http.Request) {
	s, err := h.e.Seed(r.URL.Query().Get("phrase"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateResp{State: s.String()})
}

func (h *httpAPI) handleNext(w http.ResponseWriter, r *http.Request) {
	s, err := h.state(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	n, err := parseInt(r, "n")
	if err != nil {
		writeErr(w, err)
		return
	}
	vals, s, err := h.e.Next(s, n)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, uintsResp{Values: vals, State: s.String()})
}

func (h *httpAPI) handleNextFloat(w http.ResponseWriter, r *http.Request) {
	s, err := h.state(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	n, err := parseInt(r, "n")
	if err != nil {
		writeErr(w, err)
		return
	}
	vals, s, err := h.e.NextFloat(s, n)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, floatsResp{Values: vals, State: s.String()})
}

func (h *httpAPI) handleBelow(w http.ResponseWriter, r *http.Request) {
	s, err := h.state(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	bound, err := strconv.ParseUint(r.URL.Query().Get("bound"), 10, 32)
	if err != nil {
		writeErr(w, badParam("bound"))
		return
	}
	v, s, err := h.e.Below(s, uint32(bound))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, belowResp{Value: v, State: s.String()})
}

func (h *httpAPI) handleDraw(w http.ResponseWriter, r *http.Request) {
	s, err := h.state(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	p, err := parseFloat(r, "p")
	if err != nil {
		writeErr(w, err)
		return
	}
	hit, s, err := h.e.Draw(s, p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drawResp{Hit: hit, State: s.String()})
}

func (h *httpAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.state(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	n, err := parseInt(r, "n")
	if err != nil {
		writeErr(w, err)
		return
	}
	st, s, err := h.e.Stats(s, n)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResp{Stats: st, State: s.String()})
}
