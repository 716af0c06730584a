package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	statDb "github.com/motus-games/motus/internal/database/stat/database"
	"github.com/motus-games/motus/internal/game"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func firstLetter(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0])
}

func (s *Server) handleWordOfTheDay(w http.ResponseWriter, r *http.Request) {
	word := s.rotator.Word()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"length":      len([]rune(word)),
		"firstLetter": firstLetter(word),
	})
}

func (s *Server) handleDebugWordOfTheDay(w http.ResponseWriter, r *http.Request) {
	word := s.rotator.Word()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word":        word,
		"length":      len([]rune(word)),
		"firstLetter": firstLetter(word),
	})
}

// handleRandomWord opens a solo session. The target word never leaves the
// server, the client only gets the session id and a hint.
func (s *Server) handleRandomWord(w http.ResponseWriter, r *http.Request) {
	length := 0
	if raw := r.URL.Query().Get("length"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid length")
			return
		}
		length = parsed
	}

	word, err := s.dict.RandomWord(length)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No word for this length")
		return
	}

	session := s.solo.Create(word)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId":   session.ID,
		"length":      len([]rune(word)),
		"firstLetter": firstLetter(word),
	})
}

type checkWordRequest struct {
	Word  string `json:"word"`
	Guess string `json:"guess"`
}

// handleCheckWord evaluates a solo or daily guess. The word field carries
// either the DAILY marker or a solo session id.
func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	var req checkWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Word == "" || req.Guess == "" {
		writeError(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	var target string
	if req.Word == "DAILY" {
		target = s.rotator.Word()
	} else {
		word, ok := s.solo.Word(req.Word)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid session")
			return
		}
		target = word
	}

	guess := game.Normalize(req.Guess)
	if len([]rune(guess)) != len([]rune(target)) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":   false,
			"message": fmt.Sprintf("Le mot doit contenir %d lettres", len([]rune(target))),
		})
		return
	}
	if firstLetter(guess) != firstLetter(target) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":   false,
			"message": fmt.Sprintf("Le mot doit commencer par %s", firstLetter(target)),
		})
		return
	}
	if !s.dict.Contains(guess) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":   false,
			"message": "Mot non trouvé dans le dictionnaire",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"result": game.Evaluate(target, guess),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	pseudo := chi.URLParam(r, "pseudo")
	if pseudo == "" {
		writeError(w, http.StatusBadRequest, "Missing pseudo")
		return
	}

	profile, err := s.stats.FetchProfileStat(pseudo)
	if errors.Is(err, statDb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Unknown player")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Profile unavailable")
		return
	}

	games, err := s.stats.FetchByPseudo(pseudo)
	if err != nil && !errors.Is(err, statDb.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Profile unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pseudo":  pseudo,
		"profile": profile,
		"games":   games,
	})
}
