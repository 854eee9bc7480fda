package handlers

import (
	"context"
	"net/http"

	"dating-backend/internal/middleware"
	"dating-backend/internal/models"
	"dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chatService *services.ChatService
	userService *services.UserService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *services.ChatService, userService *services.UserService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		userService: userService,
	}
}

// SendMessageRequest holds the text parts of the chat form; the image travels as a file part
type SendMessageRequest struct {
	Content string `schema:"content" validate:"max=4000"`
	Gift    string `schema:"gift" validate:"max=255"`
}

// MessageResponse is a message plus where its image or gift can be fetched
type MessageResponse struct {
	*models.Message
	AssetURL string `json:"asset_url,omitempty"`
}

// ConversationResponse is the chat page for one partner
type ConversationResponse struct {
	Receiver *ProfileResponse  `json:"receiver"`
	Messages []MessageResponse `json:"messages"`
	Gifts    []string          `json:"gifts"`
	Sent     *MessageResponse  `json:"sent,omitempty"`
}

// GetConversation handles GET /api/v1/chat/{user_id}
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	receiverID, err := userIDParam(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.conversation(ctx, userID, receiverID)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("receiver_id", receiverID).
			Msg("Failed to get conversation")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// SendMessage handles POST /api/v1/chat/{user_id}
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.GetUserID(ctx)

	receiverID, err := userIDParam(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SendMessageRequest
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

	msg, err := h.chatService.Send(ctx, userID, receiverID, services.SendInput{
		Text:  req.Content,
		Gift:  req.Gift,
		Image: image,
	})
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("receiver_id", receiverID).
			Msg("Failed to send message")
		respondServiceError(w, err)
		return
	}

	resp, err := h.conversation(ctx, userID, receiverID)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("receiver_id", receiverID).
			Msg("Failed to get conversation")
		respondServiceError(w, err)
		return
	}

	status := http.StatusOK
	if msg != nil {
		log.Info().
			Int64("user_id", userID).
			Int64("receiver_id", receiverID).
			Int64("message_id", msg.ID).
			Str("kind", string(msg.Kind)).
			Msg("Message sent")

		sent := h.message(ctx, msg)
		resp.Sent = &sent
		status = http.StatusCreated
	}

	respondJSON(w, status, resp)
}

func (h *ChatHandler) conversation(ctx context.Context, userID, receiverID int64) (*ConversationResponse, error) {
	receiver, err := h.userService.GetUser(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	messages, err := h.chatService.Conversation(ctx, userID, receiverID)
	if err != nil {
		return nil, err
	}

	gifts, err := h.chatService.Gifts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ConversationResponse{
		Receiver: profileResponse(ctx, h.userService, receiver),
		Messages: make([]MessageResponse, 0, len(messages)),
		Gifts:    gifts,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, h.message(ctx, m))
	}
	if resp.Gifts == nil {
		resp.Gifts = []string{}
	}

	return resp, nil
}

func (h *ChatHandler) message(ctx context.Context, msg *models.Message) MessageResponse {
	url, err := h.chatService.AssetURL(ctx, msg)
	if err != nil {
		log.Warn().Err(err).Int64("message_id", msg.ID).Msg("Failed to resolve asset URL")
	}
	return MessageResponse{Message: msg, AssetURL: url}
}
