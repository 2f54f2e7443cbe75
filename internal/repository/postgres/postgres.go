package postgres

import (
	"database/sql"

	"agrorent-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.EquipmentRepository
	repository.ReviewRepository
	repository.RentalRepository
	repository.InquiryRepository
}

// clampPaging defends against non-positive page numbers and sizes; callers
// get page 1 with the default size instead of an error.
func clampPaging(page, pageSize, defaultSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultSize
	}
	return page, pageSize
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		ProfileRepository:   NewProfileRepository(db),
		EquipmentRepository: NewEquipmentRepository(db),
		ReviewRepository:    NewReviewRepository(db),
		RentalRepository:    NewRentalRepository(db),
		InquiryRepository:   NewInquiryRepository(db),
	}
}
