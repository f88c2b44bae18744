// Package access decides whether a principal may perform an action on a resource.
// Decisions are pure and must be evaluated against the current stored state.
package access

import (
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAuthor    Role = "author"
	RoleAnonymous Role = "anonymous"
)

// NormalizeRole maps unknown roles to anonymous.
func NormalizeRole(role string) Role {
	switch Role(role) {
	case RoleAdmin, RoleAuthor:
		return Role(role)
	default:
		return RoleAnonymous
	}
}

// Principal is the authenticated actor of a request.
type Principal struct {
	ID   int
	Role Role
}

var Anonymous = Principal{Role: RoleAnonymous}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func (p Principal) IsAuthenticated() bool {
	return p.ID > 0 && (p.Role == RoleAdmin || p.Role == RoleAuthor)
}

type Action string

const (
	ActionRead      Action = "read"
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionArchive   Action = "archive"
	ActionPublish   Action = "publish"
	ActionRestore   Action = "restore"
	ActionReorder   Action = "reorder"
	ActionSetLeader Action = "setLeader"
	ActionManage    Action = "manage"
)

type Kind string

const (
	KindNews      Kind = "news"
	KindMember    Kind = "member"
	KindAboutCard Kind = "aboutCard"
	KindSetting   Kind = "setting"
	KindUser      Kind = "user"
)

// Resource describes the target of an action as currently stored.
type Resource struct {
	Kind    Kind
	OwnerID int
	// Public is true for published news and active members.
	Public bool
}

type Reason string

const (
	ReasonAdmin            Reason = "admin"
	ReasonOwner            Reason = "owner"
	ReasonEditorial        Reason = "editorial"
	ReasonPublicRead       Reason = "public_read"
	ReasonStaffRead        Reason = "staff_read"
	ReasonNotAuthenticated Reason = "not_authenticated"
	ReasonNotOwner         Reason = "not_owner"
	ReasonAdminOnly        Reason = "admin_only"
	ReasonNotPublic        Reason = "not_public"
)

// Requirement labels surfaced in permission errors.
const (
	RequireAdmin         = "admin"
	RequireAdminOrOwner  = "admin or owner"
	RequireAuthenticated = "authenticated"
)

type Decision struct {
	Allowed  bool
	Reason   Reason
	Required string
}

func allow(reason Reason) Decision { return Decision{Allowed: true, Reason: reason} }

func deny(reason Reason, required string) Decision {
	return Decision{Reason: reason, Required: required}
}

// Authorize evaluates the role and ownership table for a single action.
func Authorize(p Principal, action Action, res Resource) Decision {
	if res.Kind == KindUser {
		return authorizeUser(p)
	}

	if action == ActionRead {
		switch {
		case res.Public:
			return allow(ReasonPublicRead)
		case p.IsAuthenticated():
			return allow(ReasonStaffRead)
		default:
			return deny(ReasonNotPublic, RequireAuthenticated)
		}
	}

	if !p.IsAuthenticated() {
		return deny(ReasonNotAuthenticated, RequireAuthenticated)
	}

	if p.IsAdmin() {
		return allow(ReasonAdmin)
	}

	switch action {
	case ActionRestore, ActionReorder, ActionSetLeader, ActionManage:
		return deny(ReasonAdminOnly, RequireAdmin)
	}

	switch res.Kind {
	case KindNews:
		if action == ActionCreate {
			return allow(ReasonOwner)
		}
		if res.OwnerID == p.ID {
			return allow(ReasonOwner)
		}
		return deny(ReasonNotOwner, RequireAdminOrOwner)
	case KindMember, KindAboutCard:
		if action == ActionCreate || action == ActionUpdate {
			return allow(ReasonEditorial)
		}
		return deny(ReasonAdminOnly, RequireAdmin)
	default:
		return deny(ReasonAdminOnly, RequireAdmin)
	}
}

// authorizeUser gates staff accounts: every action, reads included, is admin-only.
func authorizeUser(p Principal) Decision {
	switch {
	case !p.IsAuthenticated():
		return deny(ReasonNotAuthenticated, RequireAuthenticated)
	case p.IsAdmin():
		return allow(ReasonAdmin)
	default:
		return deny(ReasonAdminOnly, RequireAdmin)
	}
}

// Err converts a denied decision into a typed permission error.
func (d Decision) Err(p Principal, action Action, res Resource) error {
	if d.Allowed {
		return nil
	}

	return &domain.PermissionDeniedError{
		Action:        string(res.Kind) + "." + string(action),
		Required:      d.Required,
		PrincipalID:   p.ID,
		PrincipalRole: string(p.Role),
		Reason:        string(d.Reason),
	}
}

// Check is Authorize followed by Err.
func Check(p Principal, action Action, res Resource) error {
	return Authorize(p, action, res).Err(p, action, res)
}
