package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/lsemperez/gymtrack/internal/importer"
)

// validateFileResponse is returned by the format-check endpoint.
type validateFileResponse struct {
	Valid   bool   `json:"valid"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// readImportFile enforces the upload boundary: multipart field "file", a
// .json extension, and the configured size limit. Boundary failures are the
// caller's 400; they never reach the pipeline.
func (s *Server) readImportFile(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, fmt.Errorf("file too large or invalid form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("no file provided")
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".json") {
		return nil, fmt.Errorf("only .json files are accepted")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("could not read file")
	}
	return data, nil
}

// handleImportExercises runs the exercise pipeline on an uploaded JSON file.
// Boundary failures are a 400; anything the pipeline can recover from is
// reported inside a 201 result body.
func (s *Server) handleImportExercises(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImportFile(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payloads []importer.ExercisePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		writeError(w, http.StatusBadRequest, "file is not a valid exercise list")
		return
	}

	result := s.importer.ImportExercises(r.Context(), payloads)
	writeJSON(w, http.StatusCreated, result)
}

// handleValidateExerciseFile checks upload format only; nothing is
// persisted.
func (s *Server) handleValidateExerciseFile(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImportFile(w, r)
	if err != nil {
		writeJSON(w, http.StatusOK, validateFileResponse{Valid: false, Message: err.Error()})
		return
	}

	var payloads []importer.ExercisePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		writeJSON(w, http.StatusOK, validateFileResponse{
			Valid:   false,
			Message: "file is not a valid exercise list",
		})
		return
	}

	writeJSON(w, http.StatusOK, validateFileResponse{
		Valid:   true,
		Count:   len(payloads),
		Message: fmt.Sprintf("file contains %d exercises", len(payloads)),
	})
}

// handleImportRoutines runs the all-or-nothing routine pipeline.
func (s *Server) handleImportRoutines(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImportFile(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payloads []importer.RoutinePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		writeError(w, http.StatusBadRequest, "file is not a valid routine list")
		return
	}

	result := s.importer.ImportRoutines(r.Context(), payloads)
	writeJSON(w, http.StatusCreated, result)
}

// handleValidateRoutineFile checks upload format only; nothing is persisted
// and exercise references are not resolved.
func (s *Server) handleValidateRoutineFile(w http.ResponseWriter, r *http.Request) {
	data, err := s.readImportFile(w, r)
	if err != nil {
		writeJSON(w, http.StatusOK, validateFileResponse{Valid: false, Message: err.Error()})
		return
	}

	var payloads []importer.RoutinePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		writeJSON(w, http.StatusOK, validateFileResponse{
			Valid:   false,
			Message: "file is not a valid routine list",
		})
		return
	}

	writeJSON(w, http.StatusOK, validateFileResponse{
		Valid:   true,
		Count:   len(payloads),
		Message: fmt.Sprintf("file contains %d routines", len(payloads)),
	})
}
