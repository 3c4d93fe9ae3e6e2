/* handlers.go
 * Contains the HTTP handlers. Admin handlers are wrapped by requireAdmin in router.go
 * Authors: Zachary Bower
 */

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"madness-pool/api/api"
	"madness-pool/api/bracket"
	"madness-pool/api/shared"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps an api error to the HTTP status returned to the caller
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrNoTournament),
		errors.Is(err, api.ErrNoBracket),
		errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	case errors.Is(err, api.ErrGameNotReady),
		errors.Is(err, api.ErrUnknownTeam),
		errors.Is(err, api.ErrFinalRound),
		errors.Is(err, bracket.ErrInvalidRound),
		errors.Is(err, bracket.ErrDataIntegrity):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeAPIError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Println("request failed:", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// RecordResultHandler records the winner of a game and recalculates the leaderboard
// Preconditions: Receives a JSON body {"gameId": n, "winner": "team"} from an admin
// Postconditions: Responds with the updated game, or an error status if the result could not be recorded
func (s *Server) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameID == 0 || req.Winner == "" {
		writeError(w, http.StatusBadRequest, "gameId and winner are required")
		return
	}

	game, err := s.api.RecordResult(r.Context(), req.GameID, req.Winner)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	s.metrics.resultsRecorded.Inc()
	s.metrics.leaderboardRuns.Inc()
	log.Printf("result recorded over http: game %d won by %s", game.GameID, game.Winner)
	writeJSON(w, http.StatusOK, game)
}

// SetRoundHandler sets the round being played. A round of 0 advances to the next round
func (s *Server) SetRoundHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req roundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Round < 0 || req.Round > shared.NumRounds {
		writeError(w, http.StatusBadRequest, "round must be between 1 and 6, or 0 to advance")
		return
	}

	round := req.Round
	var err error
	if round == 0 {
		round, err = s.api.AdvanceRound(r.Context())
	} else {
		err = s.api.SetCurrentRound(r.Context(), round)
	}
	if err != nil {
		writeAPIError(w, err)
		return
	}
	s.metrics.leaderboardRuns.Inc()
	writeJSON(w, http.StatusOK, roundRequest{Round: round})
}

// LeaderboardHandler responds with the stored leaderboard as JSON
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.api.GetLeaderboardData()
	if err != nil {
		writeAPIError(w, err)
		return
	}
	w.Header().Set("X-Results-Hash", leaderboard.ResultsHash)
	writeJSON(w, http.StatusOK, leaderboard)
}

// LeaderboardExportHandler responds with the leaderboard as an xlsx workbook
func (s *Server) LeaderboardExportHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.api.ExportLeaderboard(&buf); err != nil {
		writeAPIError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Println("failed to write export:", err)
	}
}

// BracketHandler responds with a user's bracket
func (s *Server) BracketHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	b, err := s.api.GetBracket(userID)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
