package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lawlink-api/internal/application/account"
	"github.com/lawlink-api/internal/application/registration"
	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/transport/http/middleware"
)

// AccountHandler serves the per-role profile endpoints. One instance per role
// collection, bound to its routes in the router.
type AccountHandler struct {
	svc  account.Service
	role string
}

func NewAccountHandler(svc account.Service, role string) *AccountHandler {
	return &AccountHandler{svc: svc, role: role}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []domain.Account
		err      error
	)
	switch h.role {
	case domain.RoleAdmin:
		accounts, err = h.svc.ListAdmins(r.Context())
	case domain.RoleLawyer:
		accounts, err = h.svc.ListLawyers(r.Context())
	default:
		accounts, err = h.svc.ListClients(r.Context())
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), h.role, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Update lets an account edit its own profile; admins may edit anyone's.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")
	if claims.AccountID != targetID && claims.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot update another account")
		return
	}
	var req domain.UpdateProfileRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.UpdateProfile(r.Context(), h.role, targetID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// GetPicture resolves the account's profile picture to a fetchable URL.
func (h *AccountHandler) GetPicture(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.ProfilePictureURL(r.Context(), h.role, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, URLEnvelope{URL: url})
}

// UpdatePicture replaces the profile picture. Same ownership rule as Update:
// the account itself, or an admin.
func (h *AccountHandler) UpdatePicture(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	targetID := chi.URLParam(r, "id")
	if claims.AccountID != targetID && claims.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "cannot update another account")
		return
	}

	if err := r.ParseMultipartForm(maxProfilePictureBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("profile_picture")
	if err != nil {
		writeError(w, http.StatusBadRequest, "profile_picture file is required")
		return
	}
	defer file.Close()

	a, err := h.svc.UpdateProfilePicture(r.Context(), h.role, targetID, account.PictureUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// AdminHandler covers the admin-trusted account surface.
type AdminHandler struct {
	regSvc registration.Service
}

func NewAdminHandler(regSvc registration.Service) *AdminHandler {
	return &AdminHandler{regSvc: regSvc}
}

// Create handles POST /admins: direct registration, no OTP step.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterAdminRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.regSvc.RegisterAdmin(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}
