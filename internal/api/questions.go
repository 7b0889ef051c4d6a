package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/lorequiz/internal/quiz"
)

// handleRandomQuestion generates a single ad-hoc question for a
// difficulty. It runs through the same batch generator with a count of
// one, so it inherits the batch contract: no valid question, no answer.
func (s *Server) handleRandomQuestion(w http.ResponseWriter, r *http.Request) {
	difficulty := chi.URLParam(r, "difficulty")

	items, err := s.store.GetAllItems()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	if len(items) < 4 {
		respondError(w, http.StatusBadRequest, "Not enough items in the database to generate a question.")
		return
	}

	gen := quiz.New(s.ascendancyTypeIDs, nil)
	questions, err := gen.Generate(difficulty, 1, items)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not generate a question with the given difficulty and data.")
		return
	}

	respondJSON(w, http.StatusOK, questions[0])
}
