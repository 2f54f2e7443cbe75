package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/service"
)

type ProfileHandler struct {
	profileSvc service.ProfileService
	uploads    UploadPolicy
}

func NewProfileHandler(profileSvc service.ProfileService, uploads UploadPolicy) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc, uploads: uploads}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	p, err := h.profileSvc.GetProfile(r.Context(), caller.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) AccountDetails(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	details, err := h.profileSvc.GetAccountDetails(r.Context(), caller.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileSvc.GetProfile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type profilePatchForm struct {
	Username      *string `json:"username"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var form profilePatchForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	p, err := h.profileSvc.UpdateProfile(r.Context(), caller.ID, service.ProfilePatch{
		Username:      form.Username,
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Address:       form.Address,
		ContactNumber: form.ContactNumber,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	image, closer, err := imageFromForm(r, h.uploads)
	if err != nil {
		respondError(w, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}
	url, err := h.profileSvc.UpdateAvatar(r.Context(), caller.ID, image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.profileSvc.DeleteAccount(r.Context(), caller.ID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProfileHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.profileSvc.AdminDeleteUser(r.Context(), caller.ID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
