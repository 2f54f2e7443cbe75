package http

import (
	"net/http"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardSvc.AdminStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) LenderStats(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	stats, err := h.dashboardSvc.LenderStats(r.Context(), caller.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	series, err := h.dashboardSvc.UserGrowth(r.Context(), queryInt(r, "months", 3))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (h *DashboardHandler) RentalGrowth(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	series, err := h.dashboardSvc.RentalGrowth(r.Context(), caller.ID, queryInt(r, "months", 3))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (h *DashboardHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	role := domain.Role(q.Get("role"))
	// The frontend historically used "renter" for the farmer role.
	if role == "renter" {
		role = domain.RoleFarmer
	}
	items, total, err := h.dashboardSvc.ListUsers(r.Context(),
		q.Get("search"), role,
		queryInt32(r, "page", 1),
		queryInt32(r, "limit", 10),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items, total))
}

func (h *DashboardHandler) PopularEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.dashboardSvc.PopularEquipment(r.Context(), queryInt32(r, "limit", 4))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}
