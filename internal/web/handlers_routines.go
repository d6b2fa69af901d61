package web

import (
	"errors"
	"net/http"

	"github.com/lsemperez/gymtrack/internal/store"
)

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	page, err := s.routines.List(r.Context(), queryInt(r, "page"), queryInt(r, "pageSize"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "could not list routines")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}
	routine, err := s.routines.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "routine not found")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "could not load routine")
		return
	}
	writeJSON(w, http.StatusOK, routine)
}
