package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lawlink-api/internal/application/comment"
	"github.com/lawlink-api/internal/domain"
)

type CommentHandler struct {
	svc comment.Service
}

func NewCommentHandler(svc comment.Service) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCommentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CommentHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.CommentsByClient(r.Context(), chi.URLParam(r, "client_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) ListByLawyer(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.CommentsByLawyer(r.Context(), chi.URLParam(r, "lawyer_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "comment deleted"})
}

func (h *CommentHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReplyRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rep, err := h.svc.CreateReply(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (h *CommentHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := h.svc.RepliesByComment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, replies)
}
