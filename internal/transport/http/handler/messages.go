package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lawlink-api/internal/application/message"
	"github.com/lawlink-api/internal/domain"
)

type MessageHandler struct {
	svc message.Service
}

func NewMessageHandler(svc message.Service) *MessageHandler {
	return &MessageHandler{svc: svc}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.svc.Send(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Conversation(r.Context(), chi.URLParam(r, "conversation_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
