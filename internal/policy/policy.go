// Package policy centralizes every role-based decision so the rules cannot
// drift between the add/update/remove paths that consult them. Functions are
// pure: they look only at the roles handed to them.
package policy

import "taskboard/internal/domain"

// CanManageMembers reports whether a member with the given role may add
// members to the project. Owners and admins can; plain members cannot.
func CanManageMembers(actor domain.Role) bool {
	return actor == domain.RoleOwner || actor == domain.RoleAdmin
}

// CanAssignRole reports whether the actor may hand out the given role.
// Only the owner can mint admins.
func CanAssignRole(actor domain.Role, role domain.Role) bool {
	return role != domain.RoleAdmin || actor == domain.RoleOwner
}

// CanUpdateRole reports whether the actor may change member roles at all.
// Restricted to the owner.
func CanUpdateRole(actor domain.Role) bool {
	return actor == domain.RoleOwner
}

// CanRemoveMember reports whether the actor may remove the target
// membership. The owner membership itself is never removable, so a project
// always keeps its single owner. Beyond that, the owner may remove anyone;
// an admin may remove plain members only — never another admin, themselves
// included.
func CanRemoveMember(actor domain.Role, target domain.Role) bool {
	if target == domain.RoleOwner {
		return false
	}
	if actor == domain.RoleOwner {
		return true
	}
	return CanManageMembers(actor) && target == domain.RoleMember
}

// CanViewProject reports whether a membership grants read access. Any
// membership does; visibility is never narrowed by role.
func CanViewProject(actor domain.Role) bool {
	return actor.Rank() > 0
}

// CanEditProject reports whether a membership grants write access to the
// project record and its tasks. Deliberately the most permissive variant:
// any member may edit. Tighten here if product intent changes.
func CanEditProject(actor domain.Role) bool {
	return actor.Rank() > 0
}
