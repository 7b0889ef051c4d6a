package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/meur/lorequiz/internal/models"
	"github.com/meur/lorequiz/internal/quiz"
)

const questionsPerDifficulty = 5

// handleStartGame starts a timed game: 5 questions per difficulty,
// 25 in total. A difficulty that can't fill its batch rejects the whole
// game with a structured error naming the shortfall.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.GetAllItems()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch items")
		return
	}
	if len(items) < 20 {
		respondError(w, http.StatusBadRequest, "Not enough items in database to start game.")
		return
	}

	gen := quiz.New(s.ascendancyTypeIDs, nil)
	session := models.GameSession{
		SessionID: uuid.New().String(),
		Questions: []models.Question{},
	}

	for _, difficulty := range quiz.Difficulties {
		questions, err := gen.Generate(difficulty, questionsPerDifficulty, items)
		if err != nil {
			var insufficient *quiz.InsufficientDataError
			if errors.As(err, &insufficient) {
				log.Printf("start game: %v", err)
				respondJSON(w, http.StatusBadRequest, map[string]interface{}{
					"error":     fmt.Sprintf("Could not generate enough questions for %s difficulty.", difficulty),
					"generated": insufficient.Generated,
					"required":  insufficient.Required,
				})
				return
			}
			respondError(w, http.StatusInternalServerError, "Failed to generate questions")
			return
		}
		session.Questions = append(session.Questions, questions...)
	}

	respondJSON(w, http.StatusOK, session)
}

// handleSubmitScore records a finished run on the leaderboard
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreSubmission
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	entry, err := s.store.AddLeaderboardEntry(req.Name, req.Score, req.TotalTimeMs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// handleGetLeaderboard returns the top entries, best score first
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := strconv.Atoi(r.URL.Query().Get("top"))
	if err != nil || top <= 0 {
		top = 10
	}

	entries, err := s.store.TopLeaderboard(top)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}

	respondJSON(w, http.StatusOK, entries)
}
