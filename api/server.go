package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wricardo/martian-robots/game/mission"
	"github.com/wricardo/martian-robots/game/service"
	"github.com/wricardo/martian-robots/transport/websocket"
)

// maxInputBytes caps the size of a mission posted to the API
const maxInputBytes = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.SimulationService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(simService service.SimulationService, hub *websocket.Hub) *Server {
	s := &Server{
		service: simService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("", s.handleIndex).Methods("GET")

	// Runs
	api.HandleFunc("/runs", s.handleCreateRun).Methods("POST")
	api.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	api.HandleFunc("/runs/{id}/report", s.handleGetReport).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleDeleteRun).Methods("DELETE")

	// Missions
	api.HandleFunc("/missions", s.handleListMissions).Methods("GET")
	api.HandleFunc("/missions/{name}", s.handleGetMission).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mission.ErrMalformedInput), errors.Is(err, mission.ErrInvalidMission):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name": "martian-robots",
		"endpoints": []string{
			"POST /api/runs",
			"GET /api/runs",
			"GET /api/runs/{id}",
			"GET /api/runs/{id}/report",
			"DELETE /api/runs/{id}",
			"GET /api/missions",
			"GET /api/missions/{name}",
			"GET /ws?run={id}",
		},
	})
}

// Run Handlers

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input     string `json:"input,omitempty"`
		MissionID string `json:"mission_id,omitempty"`
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		run *service.RunInfo
		err error
	)
	switch {
	case req.Input != "" && req.MissionID != "":
		respondError(w, http.StatusBadRequest, "Provide either input or mission_id, not both")
		return
	case req.MissionID != "":
		run, err = s.service.SimulateMission(r.Context(), req.MissionID)
	case req.Input != "":
		run, err = s.service.Simulate(r.Context(), req.Input)
	default:
		respondError(w, http.StatusBadRequest, "One of input or mission_id is required")
		return
	}
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	// Broadcast to WebSocket clients
	if s.hub != nil {
		s.hub.BroadcastRun(run)
	}

	respondJSON(w, http.StatusCreated, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.ListRuns(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	query := r.URL.Query()
	order := query.Get("order") // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit")

	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid order %q, use asc or desc", order))
		return
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if order == "asc" {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	total := len(runs)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(runs) {
			runs = runs[:l]
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"total": total,
		"runs":  runs,
		"order": order,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if run.Report != "" {
		fmt.Fprintln(w, run.Report)
	}
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	if err := s.service.DeleteRun(r.Context(), runID); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Run %s deleted", runID),
	})
}

// Mission Handlers

func (s *Server) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := s.service.ListMissions(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if missions == nil {
		missions = []*service.MissionInfo{}
	}

	respondJSON(w, http.StatusOK, missions)
}

func (s *Server) handleGetMission(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	detail, err := s.service.LoadMission(r.Context(), name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "WebSocket feed not enabled")
		return
	}

	runID := r.URL.Query().Get("run")
	if runID == "" || runID == websocket.AllRuns {
		s.hub.ServeWS(w, r, runID)
		return
	}

	// A run is complete once it exists, so its events are replayed
	run, err := s.service.GetRun(r.Context(), runID)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	s.hub.ServeRunWS(w, r, run)
}
