package model

// RoleKind enumerates the role names stored in the `userRole` table.
type RoleKind string

const (
	RoleDiner      RoleKind = "diner"      // regular customer, no object reference
	RoleFranchisee RoleKind = "franchisee" // franchise-scoped admin, references a franchise
	RoleAdmin      RoleKind = "admin"      // global administrator
)

// RoleBinding is one row of the `userRole` table. For franchisee
// bindings the Object field carries the franchise name supplied at
// creation time; it is resolved to ObjectID before the row is written
// and never stored as a loose string.
//
// Fields:
//  Role     – role name (diner, franchisee, admin).
//  Object   – franchise name used to resolve ObjectID (inbound only).
//  ObjectID – userRole.objectId (0 for diner and admin).
type RoleBinding struct {
	Role     RoleKind `json:"role"`
	Object   string   `json:"object,omitempty"`
	ObjectID uint64   `json:"objectId,omitempty"`
}

// User mirrors the `user` table plus its role bindings. The Password
// field only ever holds an inbound plaintext value; every repository
// method clears it before returning, so neither the plaintext nor the
// stored hash appears in a response.
//
// Fields:
//  ID       – user.id
//  Name     – user.name
//  Email    – user.email (unique)
//  Password – inbound plaintext, never returned
//  Roles    – rows of userRole for this user
type User struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password,omitempty"`
	Roles    []RoleBinding `json:"roles"`
}

// IsRole reports whether the user holds a binding of the given kind.
func (u *User) IsRole(kind RoleKind) bool {
	for _, r := range u.Roles {
		if r.Role == kind {
			return true
		}
	}
	return false
}

// HasFranchiseRole reports whether the user holds a franchisee binding
// for the given franchise id.
func (u *User) HasFranchiseRole(franchiseID uint64) bool {
	for _, r := range u.Roles {
		if r.Role == RoleFranchisee && r.ObjectID == franchiseID {
			return true
		}
	}
	return false
}
