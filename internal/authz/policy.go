// Package authz holds the pure authorization decision for the service.
// It consults only the caller's role bindings and the target resource;
// nothing here touches the database or the request.
package authz

import "github.com/iliyamo/pizza-order-service/internal/model"

// Action enumerates every gated operation.
type Action int

const (
	// ActionUpdateUser updates a user's profile. Self-service or admin.
	ActionUpdateUser Action = iota
	// ActionListUserFranchises views the franchises a user administers.
	// Self-service or admin.
	ActionListUserFranchises
	// ActionCreateFranchise creates a franchise. Admin only.
	ActionCreateFranchise
	// ActionDeleteFranchise deletes a franchise. Admin only.
	ActionDeleteFranchise
	// ActionCreateStore creates a store under a franchise. Admin or a
	// franchisee bound to that franchise.
	ActionCreateStore
	// ActionDeleteStore deletes a store. Same rule as create.
	ActionDeleteStore
	// ActionAddMenuItem appends to the menu. Admin only.
	ActionAddMenuItem
)

// Resource identifies the target of an action. Only the field relevant
// to the action is consulted: UserID for self-service actions,
// FranchiseID for franchise-scoped ones.
type Resource struct {
	UserID      uint64
	FranchiseID uint64
}

// Authorized decides whether the caller may perform the action on the
// resource. A system admin is always authorized, overriding any
// narrower denial. Absent a matching role binding the answer is no;
// there is no implicit grant.
func Authorized(caller *model.User, action Action, res Resource) bool {
	if caller == nil {
		return false
	}
	if caller.IsRole(model.RoleAdmin) {
		return true
	}
	switch action {
	case ActionUpdateUser, ActionListUserFranchises:
		return caller.ID == res.UserID
	case ActionCreateStore, ActionDeleteStore:
		return caller.HasFranchiseRole(res.FranchiseID)
	}
	return false
}
