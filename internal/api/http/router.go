package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/identity"
	"agrorent-backend/internal/service"
	"agrorent-backend/internal/storage"
)

// RouterDeps bundles everything the HTTP surface needs. LocalProvider and
// MockStorage are nil in production (Firebase plus GCS).
type RouterDeps struct {
	CatalogSvc      service.CatalogService
	ReviewSvc       service.ReviewService
	RentalSvc       service.RentalService
	DashboardSvc    service.DashboardService
	ProfileSvc      service.ProfileService
	ContactSvc      service.ContactService
	Provider        identity.Provider
	LocalProvider   *identity.LocalProvider
	MockStorage     *storage.MockStorageService
	DefaultPageSize int32
	Uploads         UploadPolicy
}

func NewRouter(deps RouterDeps) *mux.Router {
	auth := NewAuthMiddleware(deps.Provider)
	catalog := NewCatalogHandler(deps.CatalogSvc, deps.DefaultPageSize, deps.Uploads)
	reviews := NewReviewHandler(deps.ReviewSvc, deps.DefaultPageSize)
	rentals := NewRentalHandler(deps.RentalSvc)
	dashboard := NewDashboardHandler(deps.DashboardSvc)
	profiles := NewProfileHandler(deps.ProfileSvc, deps.Uploads)
	contact := NewContactHandler(deps.ContactSvc)

	r := mux.NewRouter()
	r.Use(RequestLogger)
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Catalog
	api.Handle("/equipment", auth.Optional(http.HandlerFunc(catalog.List))).Methods(http.MethodGet)
	api.Handle("/equipment", auth.Require(http.HandlerFunc(catalog.Create))).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}", catalog.Get).Methods(http.MethodGet)
	api.Handle("/equipment/{id}", auth.Require(http.HandlerFunc(catalog.Update))).Methods(http.MethodPatch, http.MethodPut)
	api.HandleFunc("/equipment-types", catalog.ListTypes).Methods(http.MethodGet)

	// Reviews
	api.HandleFunc("/equipment/{id}/reviews", reviews.List).Methods(http.MethodGet)
	api.Handle("/equipment/{id}/reviews", auth.Require(http.HandlerFunc(reviews.Create))).Methods(http.MethodPost)
	api.HandleFunc("/equipment/{id}/rating", reviews.Aggregate).Methods(http.MethodGet)
	api.HandleFunc("/reviews/recent", reviews.Recent).Methods(http.MethodGet)

	// Rentals
	api.Handle("/rentals", auth.Require(http.HandlerFunc(rentals.Create))).Methods(http.MethodPost)
	api.Handle("/rentals", auth.Require(http.HandlerFunc(rentals.ListRentals))).Methods(http.MethodGet)
	api.Handle("/lendings", auth.Require(http.HandlerFunc(rentals.ListLendings))).Methods(http.MethodGet)
	api.Handle("/rentals/{id}", auth.Require(http.HandlerFunc(rentals.Get))).Methods(http.MethodGet)
	api.Handle("/rentals/{id}/decision", auth.Require(http.HandlerFunc(rentals.Decide))).Methods(http.MethodPost)

	// Dashboard
	api.Handle("/dashboard/admin/stats", auth.RequireRole(domain.RoleAdmin, http.HandlerFunc(dashboard.AdminStats))).Methods(http.MethodGet)
	api.Handle("/dashboard/admin/user-growth", auth.RequireRole(domain.RoleAdmin, http.HandlerFunc(dashboard.UserGrowth))).Methods(http.MethodGet)
	api.Handle("/dashboard/admin/users", auth.RequireRole(domain.RoleAdmin, http.HandlerFunc(dashboard.ListUsers))).Methods(http.MethodGet)
	api.Handle("/dashboard/lender/stats", auth.RequireRole(domain.RoleLender, http.HandlerFunc(dashboard.LenderStats))).Methods(http.MethodGet)
	api.Handle("/dashboard/lender/rental-growth", auth.RequireRole(domain.RoleLender, http.HandlerFunc(dashboard.RentalGrowth))).Methods(http.MethodGet)
	api.HandleFunc("/equipment-popular", dashboard.PopularEquipment).Methods(http.MethodGet)

	// Profiles
	api.Handle("/profiles/me", auth.Require(http.HandlerFunc(profiles.Me))).Methods(http.MethodGet)
	api.Handle("/profiles/me", auth.Require(http.HandlerFunc(profiles.Update))).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/profiles/me/avatar", auth.Require(http.HandlerFunc(profiles.UpdateAvatar))).Methods(http.MethodPost)
	api.Handle("/profiles/me/account", auth.Require(http.HandlerFunc(profiles.AccountDetails))).Methods(http.MethodGet)
	api.Handle("/profiles/me", auth.Require(http.HandlerFunc(profiles.DeleteAccount))).Methods(http.MethodDelete)
	api.Handle("/profiles/{id}", auth.Require(http.HandlerFunc(profiles.Get))).Methods(http.MethodGet)
	api.Handle("/profiles/{id}", auth.RequireRole(domain.RoleAdmin, http.HandlerFunc(profiles.AdminDeleteUser))).Methods(http.MethodDelete)

	// Contact
	api.HandleFunc("/contact", contact.Submit).Methods(http.MethodPost)
	api.Handle("/contact", auth.Require(http.HandlerFunc(contact.List))).Methods(http.MethodGet)

	// Local identity mode only
	if deps.LocalProvider != nil {
		authHandler := NewAuthHandler(deps.LocalProvider, deps.ProfileSvc)
		api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
		api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	}

	// Mock storage mode only
	if deps.MockStorage != nil {
		media := NewMediaHandler(deps.MockStorage)
		api.HandleFunc("/media/{key:.+}", media.Download).Methods(http.MethodGet)
	}

	return r
}
