package perm

import (
	"strings"

	"presskit-cli/internal/model"
)

// rank orders roles by privilege. Unknown roles (including the empty role
// carried by editions, which have an owner but no role of their own) rank
// lowest.
func rank(r model.Role) int {
	switch r {
	case model.RoleSuperadmin:
		return 3
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	}
	return 0
}

// CanMutate is the single mutation-permission rule for the whole client.
//
// Rules:
// - A superadmin may act on anything (itself and below).
// - An admin may act on targets of equal or lower privilege, never on a
//   superadmin.
// - An editor may act only on a target it owns (owner identity equals the
//   acting identity).
//
// The predicate is pure: it looks only at its arguments, so rows can carry
// the result as a derived flag independent of search and pagination.
func CanMutate(actingRole model.Role, actingID string, targetRole model.Role, targetOwnerID string) bool {
	actingID = strings.TrimSpace(actingID)
	if actingID == "" {
		return false
	}

	switch actingRole {
	case model.RoleSuperadmin:
		return true
	case model.RoleAdmin:
		return rank(targetRole) <= rank(model.RoleAdmin)
	case model.RoleEditor:
		return strings.TrimSpace(targetOwnerID) == actingID
	}
	return false
}

// CanMutateUser gates user-management rows.
func CanMutateUser(actor model.User, target model.User) bool {
	return CanMutate(actor.Role, actor.ID, target.Role, target.ID)
}

// CanMutateEpaper gates edition rows. Editions have no role; only ownership
// matters for editors.
func CanMutateEpaper(actor model.User, e model.Epaper) bool {
	return CanMutate(actor.Role, actor.ID, "", e.OwnerID)
}
