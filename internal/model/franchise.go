package model

// Franchise mirrors the `franchise` table with its admins and stores
// attached. Admins carry only id, name and email; the repository
// resolves them from emails when the franchise is created.
//
// Fields:
//  ID     – franchise.id
//  Name   – franchise.name (unique)
//  Admins – users holding a franchisee binding for this franchise
//  Stores – stores owned by this franchise
type Franchise struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Admins []User  `json:"admins,omitempty"`
	Stores []Store `json:"stores"`
}

// Store mirrors the `store` table. TotalRevenue is derived, not stored:
// listings visible to a system admin compute it as the sum of all order
// item prices ever placed against the store.
//
// Fields:
//  ID           – store.id
//  FranchiseID  – store.franchiseId
//  Name         – store.name
//  TotalRevenue – derived revenue figure, admin listings only
type Store struct {
	ID           uint64  `json:"id"`
	FranchiseID  uint64  `json:"franchiseId,omitempty"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"totalRevenue,omitempty"`
}
