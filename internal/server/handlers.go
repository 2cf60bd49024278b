package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lendingScope/internal/history"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")

	res, err := s.querier.Query(r.Context(), address)
	if err != nil {
		if errors.Is(err, history.ErrSuperseded) {
			writeError(w, http.StatusConflict, "query superseded by a newer request")
			return
		}
		s.logger.Error("history query failed", zap.String("address", address), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, history.NewResponse(res))
}

func (s *Server) latest(w http.ResponseWriter, _ *http.Request) {
	res := s.querier.Latest()
	if res.Generation == 0 {
		writeError(w, http.StatusNotFound, "no query has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, history.NewResponse(res))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
