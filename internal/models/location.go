package models

// Location is a pickup/return branch, used as a selection list.
type Location struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	IsActive bool   `json:"isActive"`
}
