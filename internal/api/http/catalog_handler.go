package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"agrorent-backend/internal/domain"
	"agrorent-backend/internal/service"
)

// UploadPolicy bounds multipart image uploads.
type UploadPolicy struct {
	MaxBytes     int64
	AllowedTypes map[string]bool
}

func (p UploadPolicy) allowed(contentType string) bool {
	if len(p.AllowedTypes) == 0 {
		return true
	}
	return p.AllowedTypes[contentType]
}

type CatalogHandler struct {
	catalogSvc      service.CatalogService
	defaultPageSize int32
	uploads         UploadPolicy
}

func NewCatalogHandler(catalogSvc service.CatalogService, defaultPageSize int32, uploads UploadPolicy) *CatalogHandler {
	return &CatalogHandler{
		catalogSvc:      catalogSvc,
		defaultPageSize: defaultPageSize,
		uploads:         uploads,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.EquipmentFilter{
		Location: q.Get("location"),
		TypeID:   q.Get("type"),
		Search:   q.Get("search"),
		Sort:     domain.SortOrder(q.Get("sort")),
		Page:     queryInt32(r, "page", 1),
		Limit:    queryInt32(r, "limit", h.defaultPageSize),
	}

	// The owner-scoped view only works for an authenticated caller; without
	// one it resolves to an empty page rather than an error.
	if q.Get("view") == "my-equipment" {
		caller, err := CallerFromContext(r.Context())
		if err != nil {
			respondJSON(w, http.StatusOK, newListResponse([]domain.Equipment{}, 0))
			return
		}
		f.OwnerID = caller.ID
	}

	items, total, err := h.catalogSvc.ListEquipment(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items, total))
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogSvc.GetEquipmentDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// imageFromForm pulls the optional image part out of a multipart form. The
// returned closer, when non-nil, must be closed after the upload is
// consumed.
func imageFromForm(r *http.Request, policy UploadPolicy) (*service.ImageUpload, io.Closer, error) {
	if err := r.ParseMultipartForm(policy.MaxBytes); err != nil {
		return nil, nil, domain.Validationf("invalid multipart form")
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, domain.Validationf("invalid image upload")
	}
	contentType := header.Header.Get("Content-Type")
	if !policy.allowed(contentType) {
		file.Close()
		return nil, nil, domain.Validationf("unsupported image type %q", contentType)
	}
	if policy.MaxBytes > 0 && header.Size > policy.MaxBytes {
		file.Close()
		return nil, nil, domain.Validationf("image exceeds the size limit")
	}
	return &service.ImageUpload{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     file,
	}, file, nil
}

type equipmentForm struct {
	Name        string              `json:"name"`
	Model       string              `json:"model"`
	TypeID      string              `json:"type_id"`
	Rate        int64               `json:"rate"`
	Description string              `json:"description"`
	Delivery    domain.DeliveryMode `json:"delivery"`
	Location    string              `json:"location"`
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var form equipmentForm
	if payload := r.FormValue("payload"); payload != "" {
		if err := decodeJSONString(payload, &form); err != nil {
			respondError(w, err)
			return
		}
	} else {
		respondError(w, domain.Validationf("missing payload field"))
		return
	}

	eq, err := h.catalogSvc.CreateEquipment(r.Context(), caller.ID, service.EquipmentInput{
		Name:        form.Name,
		Model:       form.Model,
		TypeID:      form.TypeID,
		Rate:        form.Rate,
		Description: form.Description,
		Delivery:    form.Delivery,
		Location:    form.Location,
	}, image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, eq)
}

type equipmentPatchForm struct {
	Name        *string              `json:"name"`
	Model       *string              `json:"model"`
	TypeID      *string              `json:"type_id"`
	Rate        *int64               `json:"rate"`
	Description *string              `json:"description"`
	Delivery    *domain.DeliveryMode `json:"delivery"`
	Location    *string              `json:"location"`
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var form equipmentPatchForm
	var image *service.ImageUpload
	if isMultipart(r) {
		var closer io.Closer
		image, closer, err = imageFromForm(r, h.uploads)
		if err != nil {
			respondError(w, err)
			return
		}
		if closer != nil {
			defer closer.Close()
		}
		if payload := r.FormValue("payload"); payload != "" {
			if err := decodeJSONString(payload, &form); err != nil {
				respondError(w, err)
				return
			}
		}
	} else if err := decodeJSON(r, &form); err != nil {
		respondError(w, err)
		return
	}

	eq, err := h.catalogSvc.UpdateEquipment(r.Context(), caller.ID, mux.Vars(r)["id"], service.EquipmentPatch{
		Name:        form.Name,
		Model:       form.Model,
		TypeID:      form.TypeID,
		Rate:        form.Rate,
		Description: form.Description,
		Delivery:    form.Delivery,
		Location:    form.Location,
	}, image)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

func (h *CatalogHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogSvc.ListEquipmentTypes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(types))
}
