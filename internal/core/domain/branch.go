package domain

// Branch is a physical rental location that owns vehicles.
// A branch cannot be deleted while any vehicle still references it.
type Branch struct {
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	AuditFields
}
