package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lsemperez/gymtrack/internal/store"
)

// updateExerciseRequest replaces an exercise's description and full
// secondary muscle set.
type updateExerciseRequest struct {
	Description        string  `json:"description" validate:"required,max=2000"`
	SecondaryMuscleIDs []int64 `json:"secondaryMuscleIds" validate:"dive,gt=0"`
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed so the service applies its defaults.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	page, err := s.exercises.List(r.Context(),
		queryInt(r, "page"), queryInt(r, "pageSize"), r.URL.Query().Get("name"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "could not list exercises")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetAllExercises(w http.ResponseWriter, r *http.Request) {
	items, err := s.exercises.GetAll(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "could not list exercises")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}
	exercise, err := s.exercises.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "could not load exercise")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	var req updateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := s.exercises.Update(r.Context(), id, req.Description, req.SecondaryMuscleIDs)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}
