package handlers

import (
	"context"
	"net/http"
	"time"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// UserHandler handles account and profile HTTP requests
type UserHandler struct {
	userService *services.UserService
	cookie      SessionCookie
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, cookie SessionCookie) *UserHandler {
	return &UserHandler{
		userService: userService,
		cookie:      cookie,
	}
}

// RegisterRequest is the registration form
type RegisterRequest struct {
	Name      string `schema:"name" validate:"required,max=100"`
	Phone     string `schema:"phone" validate:"required,max=32"`
	Gender    string `schema:"gender" validate:"required,max=16"`
	Interest  string `schema:"interest" validate:"required,max=16"`
	Region    string `schema:"region" validate:"max=100"`
	Country   string `schema:"country" validate:"max=100"`
	Password  string `schema:"password" validate:"required"`
	BirthDate string `schema:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProfileRequest is the profile edit form; an empty password keeps the current one
type UpdateProfileRequest struct {
	Name      string `schema:"name" validate:"required,max=100"`
	Phone     string `schema:"phone" validate:"required,max=32"`
	Gender    string `schema:"gender" validate:"required,max=16"`
	Interest  string `schema:"interest" validate:"required,max=16"`
	Region    string `schema:"region" validate:"max=100"`
	Country   string `schema:"country" validate:"max=100"`
	Password  string `schema:"password"`
	BirthDate string `schema:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Phone    string `schema:"phone" validate:"required"`
	Password string `schema:"password" validate:"required"`
}

// ProfileResponse is a user plus the resolved location of its image
type ProfileResponse struct {
	*models.User
	ImageURL string `json:"image_url"`
}

// LoginResponse carries the session token for clients that do not keep cookies
type LoginResponse struct {
	Token string           `json:"token"`
	User  *ProfileResponse `json:"user"`
}

// Register handles POST /api/v1/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := decodeForm(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, file, err := formUpload(r, "image")
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	user, err := h.userService.Register(ctx, services.ProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Interest:  req.Interest,
		Region:    req.Region,
		Country:   req.Country,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Image:     image,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("phone", req.Phone).
			Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("image", user.Image).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, h.profile(ctx, user))
}

// Login handles POST /api/v1/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := decodeForm(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userService.Authenticate(ctx, req.Phone, req.Password)
	if err != nil {
		log.Warn().
			Err(err).
			Str("phone", req.Phone).
			Msg("Login failed")
		respondServiceError(w, err)
		return
	}

	token, err := h.userService.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)

	log.Info().Int64("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, LoginResponse{Token: token, User: h.profile(ctx, user)})
}

// Logout handles POST /api/v1/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GetProfile handles GET /api/v1/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get profile")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.profile(ctx, user))
}

// UpdateProfile handles PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := decodeForm(r, &req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	image, file, err := formUpload(r, "image")
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if file != nil {
		defer file.Close()
	}

	user, err := h.userService.UpdateProfile(ctx, userID, services.ProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Gender:    req.Gender,
		Interest:  req.Interest,
		Region:    req.Region,
		Country:   req.Country,
		Password:  req.Password,
		BirthDate: req.BirthDate,
		Image:     image,
	})
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("Profile updated")

	respondJSON(w, http.StatusOK, h.profile(ctx, user))
}

// GetUser handles GET /api/v1/users/{user_id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetID, err := userIDParam(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userService.GetUser(ctx, targetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.profile(ctx, user))
}

// DeleteAccount handles DELETE /api/v1/account
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	if err := h.userService.DeleteAccount(ctx, userID); err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("Failed to delete account")
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("Account deleted")

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) profile(ctx context.Context, user *models.User) *ProfileResponse {
	return profileResponse(ctx, h.userService, user)
}

// profileResponse resolves the image URL; a storage failure leaves it empty
func profileResponse(ctx context.Context, users *services.UserService, user *models.User) *ProfileResponse {
	url, err := users.ImageURL(ctx, user)
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to resolve image URL")
	}
	return &ProfileResponse{User: user, ImageURL: url}
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UserHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
