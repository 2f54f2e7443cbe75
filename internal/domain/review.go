package domain

import "time"

// Review belongs to one equipment listing and one author profile.
// RatingCount is an integer star rating in [1,5].
type Review struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	UserID      string    `json:"user_id"`
	RatingCount int32     `json:"rating_count"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	Author      *Profile  `json:"author,omitempty"` // populated by joined queries
}

// ReviewAggregate is the derived per-equipment rating summary. It is
// recomputed from the raw review rows, never stored.
type ReviewAggregate struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int32   `json:"total_reviews"`
}
