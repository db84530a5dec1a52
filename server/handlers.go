package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tictac/agent"
	"tictac/game"

	"github.com/rs/zerolog/hlog"
)

type moveRequest struct {
	History *game.History `json:"history"`
}

type learnRequest struct {
	History *game.History `json:"history"`
	Winner  *string       `json:"winner"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleGetMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.History == nil {
		writeError(w, http.StatusBadRequest, "Missing 'history' field")
		return
	}

	table, err := s.store.Load()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load table")
		writeError(w, http.StatusInternalServerError, "Failed to load agent state")
		return
	}

	move, player, err := s.agent.Decide(table, *req.History)
	switch {
	case errors.Is(err, agent.ErrNoValidMoves):
		writeError(w, http.StatusBadRequest, "No valid moves available")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"move": move, "player": player})
}

func (s *Server) handleLearn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	if req.History == nil {
		writeError(w, http.StatusBadRequest, "Missing 'history' field")
		return
	}
	if req.Winner == nil {
		writeError(w, http.StatusBadRequest, "Missing 'winner' field")
		return
	}

	table, err := s.store.Load()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load table")
		writeError(w, http.StatusInternalServerError, "Failed to load agent state")
		return
	}

	if err := s.agent.Learn(table, *req.History, agent.Outcome(*req.Winner)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.Save(table); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to save table")
		writeError(w, http.StatusInternalServerError, "Failed to save agent state")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.Load()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to load table")
		writeError(w, http.StatusInternalServerError, "Failed to load agent state")
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
