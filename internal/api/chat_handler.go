package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"omnichat/backend/internal/interfaces"
)

// ChatHandler exposes the conversation store and the send orchestration over
// HTTP.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// GetConversations godoc
// @Summary      List conversations
// @Description  Returns conversation metadata, most-recent-first.
// @Tags         Chats
// @Produce      json
// @Success      200  {array}  model.Conversation
// @Router       /chats [get]
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.ListConversations())
}

// GetConversation godoc
// @Summary      Get a full transcript
// @Tags         Chats
// @Produce      json
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      200  {object}  model.FullConversation
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{conversationID} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	conv, err := h.service.GetConversation(conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// CreateConversation godoc
// @Summary      Start a new conversation
// @Description  Creates an empty conversation from the current provider/model selection and makes it active.
// @Tags         Chats
// @Produce      json
// @Success      201  {object}  model.Conversation
// @Router       /chats [post]
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.service.NewConversation(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conv)
}

// ActivateConversation godoc
// @Summary      Switch the active conversation
// @Tags         Chats
// @Produce      json
// @Param        conversationID  path  string  true  "Conversation ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /chats/{conversationID}/activate [post]
func (h *ChatHandler) ActivateConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := h.service.SwitchConversation(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SendMessage godoc
// @Summary      Send a prompt
// @Description  Appends the user message to the active conversation (creating one when absent), calls the generation API and appends the reply.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        message  body  SendMessageRequest  true  "Prompt"
// @Success      200  {object}  service.SendResult
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Another request is already in flight"
// @Failure      502  {object}  ErrorResponse
// @Failure      504  {object}  ErrorResponse
// @Router       /chats/messages [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errInvalidBody(err))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.service.SendMessage(r.Context(), req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetState godoc
// @Summary      Request state
// @Description  Returns the loading flag and the last reported error, for the UI to poll.
// @Tags         Chats
// @Produce      json
// @Success      200  {object}  model.State
// @Router       /state [get]
func (h *ChatHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.State())
}
