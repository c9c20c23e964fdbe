package http

import (
	"net/http"
	"strconv"
	"strings"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

type startSessionResponse struct {
	Session *domain.ChatSession `json:"session"`
	Welcome *domain.ChatMessage `json:"welcome"`
}

func (h *ChatHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	session, welcome, err := h.chatSvc.StartSession(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, startSessionResponse{Session: session, Welcome: welcome})
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	sessionID := mux.Vars(r)["id"]

	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	turn, err := h.chatSvc.SendMessage(r.Context(), userID, sessionID, req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, turn)
}

type transcriptResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}
	sessionID := mux.Vars(r)["id"]

	limit := int32(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
			limit = int32(n)
		}
	}

	messages, err := h.chatSvc.GetTranscript(r.Context(), userID, sessionID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transcriptResponse{Messages: messages})
}
