package access

// Role is the coarse position a user holds inside WorkFlow Pro.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// Identity is the resolved caller: who they are, what they hold, and
// whether the account is still usable. It is produced by the auth
// middleware from a fresh storage lookup, never from token claims alone.
type Identity struct {
	ID       string
	Role     Role
	IsActive bool
}

// Resources known to the evaluator. Route registration and service-level
// checks must use these constants so the policy grid stays the single
// source of truth.
const (
	ResourceUser       = "user"
	ResourceTask       = "task"
	ResourceLeave      = "leave"
	ResourceAttendance = "attendance"
	ResourceFinancial  = "financial"
	ResourceReport     = "report"
	ResourceInsight    = "insight"
)

// Actions evaluated against the grid.
const (
	ActionCreate    = "create"
	ActionRead      = "read"
	ActionUpdate    = "update"
	ActionDecide    = "decide"
	ActionComment   = "comment"
	ActionSummarize = "summarize"
	ActionGenerate  = "generate"
	ActionChat      = "chat"
)

type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
	EffectAllowScoped
)

// Decision is the tagged outcome of an evaluation.
//
// EffectAllow grants the caller the whole resource type. EffectAllowScoped
// grants only rows owned by OwnerID. EffectDeny carries a human-readable
// Reason for the 403 body.
type Decision struct {
	Effect  Effect
	OwnerID string
	Reason  string
}

// Allowed reports whether the caller may touch the resource type at all.
func (d Decision) Allowed() bool {
	return d.Effect != EffectDeny
}

// Scoped reports whether the grant is limited to the caller's own rows.
func (d Decision) Scoped() bool {
	return d.Effect == EffectAllowScoped
}

// PermitsOwner reports whether the caller may act on a row owned by
// ownerID. An unscoped allow permits every owner; a scoped allow permits
// only the caller's own rows.
func (d Decision) PermitsOwner(ownerID string) bool {
	switch d.Effect {
	case EffectAllow:
		return true
	case EffectAllowScoped:
		return ownerID != "" && ownerID == d.OwnerID
	default:
		return false
	}
}

func allow() Decision {
	return Decision{Effect: EffectAllow}
}

func allowScoped(ownerID string) Decision {
	return Decision{Effect: EffectAllowScoped, OwnerID: ownerID}
}

func deny(reason string) Decision {
	return Decision{Effect: EffectDeny, Reason: reason}
}

//go:generate mockgen -source=access.go -destination=mock/access_mock.go -package=mock

// Evaluator is the single authorization gate every entity operation
// consults. It is a pure decision function: callers enforce the decision
// by short-circuiting their own query or mutation.
type Evaluator interface {
	Evaluate(caller Identity, resource, action string) Decision
}
