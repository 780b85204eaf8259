package dto

import "github.com/carrentpro/crp_backend/internal/core/domain"

// CreateBranchRequest defines the data needed to open a branch.
type CreateBranchRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Address     string `json:"address" binding:"required,max=200"`
	PhoneNumber string `json:"phoneNumber" binding:"max=20"`
}

// UpdateBranchRequest defines the fields that may change on a branch.
type UpdateBranchRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
}

// BranchResponse is the client-facing view of a branch.
type BranchResponse struct {
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// ToBranchResponse converts a domain.Branch to a BranchResponse DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:    b.BranchID,
		Name:        b.Name,
		Address:     b.Address,
		PhoneNumber: b.PhoneNumber,
	}
}

// ListBranchesResponse wraps a branch listing.
type ListBranchesResponse struct {
	Branches []BranchResponse `json:"branches"`
}

// ToListBranchesResponse converts domain branches to the list DTO.
func ToListBranchesResponse(branches []domain.Branch) ListBranchesResponse {
	out := make([]BranchResponse, len(branches))
	for i := range branches {
		out[i] = ToBranchResponse(&branches[i])
	}
	return ListBranchesResponse{Branches: out}
}
