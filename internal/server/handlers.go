package server

import (
	"encoding/json"
	"net/http"

	"github.com/abhisek/mapquiz/internal/progress"
	"github.com/abhisek/mapquiz/internal/region"
)

// maxBodyBytes bounds submitted answer payloads.
const maxBodyBytes = 1 << 20

// Health reports liveness and whether the engine is initialized.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if _, err := s.engine.Summaries(); err != nil {
		respondWithEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Regions lists the regions in unlock order.
func (s *Server) Regions(w http.ResponseWriter, r *http.Request) {
	regions := s.engine.ListRegions()
	if regions == nil {
		regions = []region.Region{}
	}
	writeJSON(w, http.StatusOK, regions)
}

// Questions returns the full catalog content.
func (s *Server) Questions(w http.ResponseWriter, r *http.Request) {
	qs, err := s.engine.Questions()
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	if qs == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

// Status returns the per-region status map.
func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	status, err := s.engine.StatusMap()
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// DueQuestions serves the next batch of due questions for a region.
func (s *Server) DueQuestions(w http.ResponseWriter, r *http.Request) {
	due, err := s.engine.DueQuestions(r.PathValue("region"))
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, due)
}

// submitRequest accepts both the current and the older answer shapes.
type submitRequest struct {
	RegionID string `json:"region_id"`
	Answers  []struct {
		ID         string  `json:"id"`
		Answer     *string `json:"answer"`
		UserAnswer *string `json:"user_answer"`
	} `json:"answers"`
}

func (req submitRequest) answers() []progress.Answer {
	out := make([]progress.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		var submitted string
		switch {
		case a.Answer != nil:
			submitted = *a.Answer
		case a.UserAnswer != nil:
			submitted = *a.UserAnswer
		}
		out = append(out, progress.Answer{QuestionID: a.ID, Submitted: submitted})
	}
	return out
}

// Submit grades a batch of answers.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	regionID := r.PathValue("region")
	if regionID == "" {
		regionID = req.RegionID
	}

	res, err := s.engine.GradeAnswers(r.Context(), regionID, req.answers())
	if err != nil {
		respondWithEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UnlockAll unlocks every region.
func (s *Server) UnlockAll(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ForceUnlockAll(r.Context()); err != nil {
		respondWithEngineError(w, err)
		return
	}
	s.Status(w, r)
}

// Reset rebuilds the engine state from the catalog and the store.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "reset failed", "reset", err)
		return
	}
	s.Status(w, r)
}
