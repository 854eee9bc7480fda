package handlers

import (
	"net/http"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	matchService *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// MatchStatusResponse reports whether two users like each other
type MatchStatusResponse struct {
	UserID int64 `json:"user_id"`
	Mutual bool  `json:"mutual"`
}

// MatchView is a match plus the user on the other side of it
type MatchView struct {
	*models.Match
	PartnerID int64 `json:"partner_id"`
}

// MatchListResponse lists matches involving the current user
type MatchListResponse struct {
	Matches []MatchView `json:"matches"`
}

// CreateMatch handles POST /api/v1/match/{user_id}
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	targetID, err := userIDParam(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.matchService.RecordInterest(ctx, userID, targetID)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("target_id", targetID).
			Msg("Failed to record match")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("target_id", targetID).
		Int64("match_id", result.Match.ID).
		Bool("mutual", result.Mutual).
		Msg("Match recorded")

	respondJSON(w, http.StatusCreated, result)
}

// GetMatchStatus handles GET /api/v1/match/{user_id}
func (h *MatchHandler) GetMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	targetID, err := userIDParam(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	mutual, err := h.matchService.IsMutual(ctx, userID, targetID)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("target_id", targetID).
			Msg("Failed to check match")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, MatchStatusResponse{UserID: targetID, Mutual: mutual})
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	matches, err := h.matchService.ListMatches(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list matches")
		respondServiceError(w, err)
		return
	}

	resp := MatchListResponse{Matches: make([]MatchView, 0, len(matches))}
	for _, m := range matches {
		partnerID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}
		resp.Matches = append(resp.Matches, MatchView{Match: m, PartnerID: partnerID})
	}

	respondJSON(w, http.StatusOK, resp)
}
