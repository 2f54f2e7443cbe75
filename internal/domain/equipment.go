package domain

import "time"

type DeliveryMode string

const (
	DeliveryModePickup   DeliveryMode = "pickup"
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModeHybrid   DeliveryMode = "hybrid"
)

func (d DeliveryMode) Valid() bool {
	switch d {
	case DeliveryModePickup, DeliveryModeDelivery, DeliveryModeHybrid:
		return true
	}
	return false
}

// EquipmentType is one entry of the fixed equipment taxonomy.
type EquipmentType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Equipment is a single listing, owned by exactly one lender profile.
// RentalCount only ever grows; it is bumped with an atomic store-level
// increment when a rental request is approved.
type Equipment struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Model       string       `json:"model"`
	TypeID      string       `json:"type_id"`
	Rate        int64        `json:"rate"` // currency amount per day, >= 0
	Description string       `json:"description"`
	Delivery    DeliveryMode `json:"delivery"`
	Location    string       `json:"location"`
	ImageURL    string       `json:"image_url"`
	RentalCount int32        `json:"rental_count"`
	AddedAt     time.Time    `json:"added_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// EquipmentDetail is a listing joined with its owner's display fields and
// the review aggregate, as rendered on the detail page.
type EquipmentDetail struct {
	Equipment
	OwnerFirstName string   `json:"owner_first_name"`
	OwnerLastName  string   `json:"owner_last_name"`
	Reviews        []Review `json:"reviews"`
	AverageRating  float64  `json:"average_rating"`
	TotalReviews   int32    `json:"total_reviews"`
}

type SortOrder string

const (
	SortPrice      SortOrder = "price"      // rate ascending
	SortNewest     SortOrder = "newest"     // added_at descending
	SortPopularity SortOrder = "popularity" // rental_count descending, nulls last
)

// EquipmentFilter carries the optional, conjunctive catalog filters.
// A non-empty OwnerID restricts the result to that lender's listings
// (the "my-equipment" view).
type EquipmentFilter struct {
	Location string
	TypeID   string
	OwnerID  string
	Search   string
	Sort     SortOrder
	Page     int32
	Limit    int32
}
