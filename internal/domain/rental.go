package domain

import (
	"math"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending  RentalStatus = "pending"
	RentalStatusApproved RentalStatus = "approved"
	RentalStatusRejected RentalStatus = "rejected"
)

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalStatusPending, RentalStatusApproved, RentalStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusApproved || s == RentalStatusRejected
}

// Rental is a time-bounded request to use a piece of equipment. OwnerID is a
// snapshot of the equipment's owner at request time; later ownership changes
// do not touch existing rentals.
type Rental struct {
	ID          string       `json:"id"`
	EquipmentID string       `json:"equipment_id"`
	RenterID    string       `json:"renter_id"`
	OwnerID     string       `json:"owner_id"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     time.Time    `json:"end_date"`
	DeliverAt   string       `json:"deliver_at"`
	ReturnAt    string       `json:"return_at"`
	Message     string       `json:"message"`
	Status      RentalStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DurationDays is the rental length in whole days, rounding any partial day
// up, minimum 1 for a valid (end > start) window.
func (r *Rental) DurationDays() int32 {
	return int32(math.Ceil(r.EndDate.Sub(r.StartDate).Hours() / 24))
}

// RentalListItem is a rental joined with the equipment name and the
// counterparty's display fields, as shown in the dashboard tables. For an
// owner's list the counterparty is the renter, and vice versa.
type RentalListItem struct {
	Rental
	EquipmentName       string `json:"equipment_name"`
	CounterpartyName    string `json:"counterparty_name"`
	CounterpartyEmail   string `json:"counterparty_email"`
	CounterpartyAddress string `json:"counterparty_address"`
	Duration            int32  `json:"duration_days"`
}
