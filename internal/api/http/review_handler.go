package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/service"
)

type ReviewHandler struct {
	reviewSvc       service.ReviewService
	defaultPageSize int32
}

func NewReviewHandler(reviewSvc service.ReviewService, defaultPageSize int32) *ReviewHandler {
	return &ReviewHandler{reviewSvc: reviewSvc, defaultPageSize: defaultPageSize}
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.reviewSvc.ListReviews(r.Context(),
		mux.Vars(r)["id"],
		queryInt32(r, "page", 1),
		queryInt32(r, "limit", h.defaultPageSize),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items, total))
}

type reviewForm struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	var form reviewForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}
	rv, err := h.reviewSvc.PostReview(r.Context(), caller.ID, mux.Vars(r)["id"], form.Rating, form.Comment)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rv)
}

func (h *ReviewHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := h.reviewSvc.Aggregate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, agg)
}

func (h *ReviewHandler) Recent(w http.ResponseWriter, r *http.Request) {
	items, err := h.reviewSvc.RecentReviews(r.Context(), queryInt32(r, "limit", 3))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(items))
}
