package model

// Package is a purchasable billing plan from the platform catalog table.
// Amount is in kobo.
type Package struct {
	ID           string `json:"id"`
	Provider     string `json:"provider"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	DurationDays int    `json:"duration_days"`
}
