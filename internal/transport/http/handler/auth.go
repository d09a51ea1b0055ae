package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lawlink-api/internal/application/auth"
	"github.com/lawlink-api/internal/application/registration"
	"github.com/lawlink-api/internal/domain"
)

// Uploaded profile pictures are capped at 5 MiB.
const maxProfilePictureBytes = 5 << 20

// AuthHandler covers registration, login and password reset.
type AuthHandler struct {
	regSvc  registration.Service
	authSvc auth.Service
}

func NewAuthHandler(regSvc registration.Service, authSvc auth.Service) *AuthHandler {
	return &AuthHandler{regSvc: regSvc, authSvc: authSvc}
}

// RegisterInitiate handles POST /auth/register/{role}/initiate.
func (h *AuthHandler) RegisterInitiate(w http.ResponseWriter, r *http.Request) {
	var ticketID string
	var err error

	switch strings.ToLower(chi.URLParam(r, "role")) {
	case "lawyer":
		var req domain.RegisterLawyerRequest
		if err := decodeStrict(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ticketID, err = h.regSvc.InitiateLawyer(r.Context(), req)
	case "client":
		var req domain.RegisterClientRequest
		if err := decodeStrict(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ticketID, err = h.regSvc.InitiateClient(r.Context(), req)
	default:
		writeError(w, http.StatusBadRequest, "role must be lawyer or client")
		return
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TicketEnvelope{
		TicketID: ticketID,
		Message:  "verification code sent",
	})
}

// RegisterFinalize handles POST /auth/register/{role}/finalize as
// multipart/form-data: ticket_id, otp and an optional profile_picture file.
func (h *AuthHandler) RegisterFinalize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxProfilePictureBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	ticketID := r.FormValue("ticket_id")
	otp := r.FormValue("otp")
	if ticketID == "" || otp == "" {
		writeError(w, http.StatusBadRequest, "ticket_id and otp are required")
		return
	}

	var pic *registration.ProfileUpload
	if file, header, err := r.FormFile("profile_picture"); err == nil {
		defer file.Close()
		pic = &registration.ProfileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
	}

	account, err := h.regSvc.Finalize(r.Context(), ticketID, otp, pic)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *AuthHandler) ResetRequest(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.authSvc.RequestReset(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reset code sent"})
}

func (h *AuthHandler) ResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req auth.ConfirmResetRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.authSvc.ConfirmReset(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})
}
