package http

import (
	"net/http"

	"agrorent-backend/internal/service"
)

type ContactHandler struct {
	contactSvc service.ContactService
}

func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

type inquiryForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form inquiryForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	inq, err := h.contactSvc.SubmitInquiry(r.Context(), service.InquiryInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Message:   form.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inq)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	items, total, err := h.contactSvc.ListInquiries(r.Context(), caller.ID,
		queryInt32(r, "page", 1),
		queryInt32(r, "limit", 10),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items, total))
}
