package domain

// AdminStats are the platform-wide account counts. Admin accounts are
// excluded everywhere, so TotalAccounts == Farmers + Lenders.
type AdminStats struct {
	TotalAccounts int32 `json:"total_accounts"`
	Farmers       int32 `json:"farmers"`
	Lenders       int32 `json:"lenders"`
}

// LenderStats are one lender's listing and rental counts. Approved and
// Rejected never exceed TotalRentals; the remainder is still pending.
type LenderStats struct {
	TotalEquipment int32 `json:"total_equipment"`
	TotalRentals   int32 `json:"total_rentals"`
	Approved       int32 `json:"approved"`
	Rejected       int32 `json:"rejected"`
}

// MonthlyCount is one bucket of a growth series: entities created in one
// calendar month. Month is the abbreviated month name.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int32  `json:"count"`
}

// AccountDetails is the summary shown on the account page.
type AccountDetails struct {
	Role         Role         `json:"role"`
	AccountAge   string       `json:"account_age"`
	Subscription Subscription `json:"subscription"`
}
