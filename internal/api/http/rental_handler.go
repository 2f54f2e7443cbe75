package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/service"
)

const rentalsPerPage = 10

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type rentalRequestForm struct {
	EquipmentID string `json:"equipment_id"`
	StartDate   string `json:"start_date"` // date+time, e.g. 2026-06-01T08:00
	EndDate     string `json:"end_date"`
	DeliverAt   string `json:"deliver_at"`
	ReturnAt    string `json:"return_at"`
	Message     string `json:"message"`
}

// Rental windows carry a time of day, so a same-day 08:00 to 17:00 booking
// stays a positive duration. A bare date is accepted and reads as midnight.
var rentalTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDateTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range rentalTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var form rentalRequestForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	start, ok := parseDateTime(form.StartDate)
	if !ok {
		respondError(w, domain.Validationf("invalid start date"))
		return
	}
	end, ok := parseDateTime(form.EndDate)
	if !ok {
		respondError(w, domain.Validationf("invalid end date"))
		return
	}

	rental, err := h.rentalSvc.SubmitRentalRequest(r.Context(), caller.ID, service.RentalRequestInput{
		EquipmentID: form.EquipmentID,
		StartDate:   start,
		EndDate:     end,
		DeliverAt:   form.DeliverAt,
		ReturnAt:    form.ReturnAt,
		Message:     form.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

type rentalDecisionForm struct {
	Status domain.RentalStatus `json:"status"`
}

func (h *RentalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var form rentalDecisionForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.rentalSvc.TransitionRental(r.Context(), caller.ID, mux.Vars(r)["id"], form.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) list(w http.ResponseWriter, r *http.Request, asOwner bool) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	q := r.URL.Query()
	status := domain.RentalStatus(q.Get("status"))
	search := q.Get("search")
	page := queryInt32(r, "page", 1)
	limit := queryInt32(r, "limit", rentalsPerPage)

	var items []domain.RentalListItem
	var total int32
	if asOwner {
		items, total, err = h.rentalSvc.ListRentalsForOwner(r.Context(), caller.ID, status, search, page, limit)
	} else {
		items, total, err = h.rentalSvc.ListRentalsForRenter(r.Context(), caller.ID, status, search, page, limit)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items, total))
}

// ListLendings lists rentals on the caller's own equipment.
func (h *RentalHandler) ListLendings(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ListRentals lists rentals the caller has requested.
func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), caller.ID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}
