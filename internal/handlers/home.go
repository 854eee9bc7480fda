package handlers

import (
	"net/http"
	"strconv"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// HomeHandler serves the candidate list
type HomeHandler struct {
	compatibilityService *services.CompatibilityService
	userService          *services.UserService
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(compatibilityService *services.CompatibilityService, userService *services.UserService) *HomeHandler {
	return &HomeHandler{
		compatibilityService: compatibilityService,
		userService:          userService,
	}
}

// HomeResponse is the current user plus the candidates they may contact
type HomeResponse struct {
	User       *ProfileResponse   `json:"user"`
	Candidates []*ProfileResponse `json:"candidates"`
}

// Index handles GET /
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Home handles GET /api/v1/home.
// With ?reciprocal=true only candidates interested in the viewer's gender are returned.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	reciprocal := false
	if raw := r.URL.Query().Get("reciprocal"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, "reciprocal must be a boolean", http.StatusBadRequest)
			return
		}
		reciprocal = parsed
	}

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user")
		respondServiceError(w, err)
		return
	}

	var candidates []*models.User
	if reciprocal {
		candidates, err = h.compatibilityService.ListReciprocal(ctx, userID)
	} else {
		candidates, err = h.compatibilityService.ListCompatible(ctx, userID)
	}
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Bool("reciprocal", reciprocal).
			Msg("Failed to list compatible users")
		respondServiceError(w, err)
		return
	}

	resp := HomeResponse{
		User:       profileResponse(ctx, h.userService, user),
		Candidates: make([]*ProfileResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, profileResponse(ctx, h.userService, c))
	}

	respondJSON(w, http.StatusOK, resp)
}
