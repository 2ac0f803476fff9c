package complaint

import "campuscare/backend/internal/models"

// Authorization policy. Each check answers permit/deny for one capability;
// denial is a normal outcome. Jurisdiction (does this role cover this
// complaint's category) is computed by the caller from configuration and
// passed in, never derived here.

// CanTransition reports whether the role may drive the requested status
// change. Students never drive the status machine; wardens and faculty act
// only inside their jurisdiction and only on non-terminal complaints;
// admins are unrestricted.
func CanTransition(role models.Role, inJurisdiction bool, current, requested models.Status) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleWarden, models.RoleFaculty:
		return inJurisdiction && !current.IsTerminal()
	default:
		return false
	}
}

// CanView reports whether the actor may read the complaint and its history.
// Students see their own complaints, staff see their jurisdiction, admins
// see everything.
func CanView(role models.Role, isOwner, inJurisdiction bool) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleWarden, models.RoleFaculty:
		return inJurisdiction
	case models.RoleStudent:
		return isOwner
	default:
		return false
	}
}

// CanEditContent reports whether the actor may rewrite the complaint's
// content fields. Owning students may do so while the complaint is still
// NEW or IN_PROGRESS; admins may always. Editing is not a transition.
func CanEditContent(role models.Role, isOwner bool, status models.Status) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleStudent && isOwner && !status.IsTerminal()
}

// CanDelete reports whether the actor may delete the complaint. Deletion is
// reserved to the owning student and admins; whether the lifecycle phase
// still permits it is the record store's check.
func CanDelete(role models.Role, isOwner bool) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleStudent && isOwner
}

// CanChangePriority reports whether the actor may re-prioritize the
// complaint. Staff only, inside jurisdiction.
func CanChangePriority(role models.Role, inJurisdiction bool) bool {
	return role.IsStaff() && inJurisdiction
}

// CanReadFeedback reports whether the actor may read the feedback content:
// the submitter, staff with jurisdiction, or an admin.
func CanReadFeedback(role models.Role, isOwner, inJurisdiction bool) bool {
	return CanView(role, isOwner, inJurisdiction)
}
