package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/golem/game/config"
	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/service"
	"github.com/wricardo/golem/game/session"
	"github.com/wricardo/golem/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// World input
	api.HandleFunc("/sessions/{id}/touch", s.handleTouch).Methods("POST")
	api.HandleFunc("/sessions/{id}/command", s.handleCommand).Methods("POST")
	api.HandleFunc("/sessions/{id}/bulk-command", s.handleBulkCommand).Methods("POST")
	api.HandleFunc("/sessions/{id}/tick", s.handleTick).Methods("POST")
	api.HandleFunc("/sessions/{id}/mapset", s.handleLoadMapSet).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")

	// World inspection
	api.HandleFunc("/sessions/{id}/state", s.handleGetWorldState).Methods("GET")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")
	api.HandleFunc("/sessions/{id}/scene", s.handleGetScene).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

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

// statusFor maps service errors to HTTP status codes, falling back to
// fallback for errors it does not recognise
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, engine.ErrMissingResource):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnknownCommand),
		errors.Is(err, service.ErrConfigUnavailable),
		errors.Is(err, session.ErrInvalidSessionID),
		errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrInvalidMapName):
		return http.StatusBadRequest
	case errors.As(err, new(*engine.FormatError)),
		errors.Is(err, engine.ErrUnknownTile),
		errors.Is(err, engine.ErrLayerMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrNotSetUp):
		return http.StatusConflict
	}
	return fallback
}

func (s *Server) broadcast(sessionID string, state *engine.WorldState) {
	if s.hub != nil && state != nil {
		s.hub.BroadcastToSession(sessionID, state)
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	configID := req.ConfigID
	if configID == "" && req.ConfigName != "" {
		configID = req.ConfigName
	}

	info, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default: "desc")
	limitStr := query.Get("limit") // number of sessions to return
	mapSet := query.Get("map_set") // only sessions currently in this map set

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	total := len(sessions)
	if mapSet != "" {
		filtered := sessions[:0]
		for _, info := range sessions {
			if info.WorldState != nil && info.WorldState.MapSet == mapSet {
				filtered = append(filtered, info)
			}
		}
		sessions = filtered
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else {
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// World Input Handlers

func (s *Server) handleTouch(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.X == nil || req.Y == nil {
		respondError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	result, err := s.service.Touch(r.Context(), sessionID, *req.X, *req.Y)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	s.broadcast(sessionID, result.WorldState)

	cmd := string(result.Command)
	if cmd == "" {
		cmd = "-"
	}
	log.Printf("[TOUCH] session=%s at=(%.0f,%.0f) command=%s changed=%t",
		sessionID, *req.X, *req.Y, cmd, result.Success)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Command string `json:"command"`
		Reset   bool   `json:"reset,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Command(r.Context(), sessionID, req.Command, req.Reset)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	s.broadcast(sessionID, result.WorldState)

	if rec := result.Record; rec != nil {
		log.Printf("[COMMAND] session=%s %s (%d,%d)->(%d,%d) map=%s gold=%d changed=%t",
			sessionID, rec.Command, rec.From.Row, rec.From.Col, rec.To.Row, rec.To.Col, rec.MapSet, rec.Gold, rec.Changed)
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleBulkCommand(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Commands []string `json:"commands"`
		Reset    bool     `json:"reset,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Commands) == 0 {
		respondError(w, http.StatusBadRequest, "commands must not be empty")
		return
	}

	result, err := s.service.BulkCommand(r.Context(), sessionID, req.Commands, req.Reset)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	s.broadcast(sessionID, result.WorldState)

	stop := result.StoppedReason
	if stop == "" {
		stop = "none"
	}
	log.Printf("[BULK] session=%s exec=%d/%d stop=%q end=%s(%d,%d) gold_delta=%d",
		sessionID, result.CommandsExecuted, result.RequestedCommands, stop,
		result.EndMapSet, result.EndPos.Row, result.EndPos.Col, result.GoldDelta)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		Count int `json:"count"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	resp, err := s.service.Tick(r.Context(), sessionID, req.Count)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	if len(resp.Transitions) > 0 {
		s.broadcast(sessionID, resp.WorldState)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLoadMapSet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		MapSet string `json:"map_set"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.MapSet) == "" {
		respondError(w, http.StatusBadRequest, "map_set is required")
		return
	}

	state, err := s.service.LoadMapSet(r.Context(), sessionID, req.MapSet)
	if err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), err.Error())
		return
	}

	s.broadcast(sessionID, state)
	log.Printf("[MAPSET] session=%s loaded %s (%dx%d, %d instances)",
		sessionID, state.MapSet, state.Rows, state.Cols, state.InstanceCount)

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	s.broadcast(sessionID, state)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "World reset successfully",
		"state":   state,
	})
}

// World Inspection Handlers

func (s *Server) handleGetWorldState(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.GetWorldState(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetCommandHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	nodes, err := s.service.GetScene(r.Context(), sessionID)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	// ?depth=0.1 narrows the listing to one layer
	if depthStr := r.URL.Query().Get("depth"); depthStr != "" {
		depth, err := strconv.ParseFloat(depthStr, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "depth must be a number")
			return
		}
		filtered := nodes[:0]
		for _, n := range nodes {
			if n.Depth == depth {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(nodes),
		"nodes": nodes,
	})
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	configName := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	worldConfig, err := s.service.LoadConfig(r.Context(), configName)
	if err != nil {
		respondError(w, statusFor(err, http.StatusNotFound), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, worldConfig)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID string `json:"config_id,omitempty"`
		engine.WorldConfig
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}
	configID := req.ConfigID
	if configID == "" {
		configID = req.Name
	}

	worldConfig := req.WorldConfig
	if err := s.service.SaveConfig(r.Context(), configID, &worldConfig); err != nil {
		respondError(w, statusFor(err, http.StatusInternalServerError), fmt.Sprintf("Failed to save config: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}
	if s.hub == nil {
		http.Error(w, "WebSocket updates are disabled", http.StatusServiceUnavailable)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
