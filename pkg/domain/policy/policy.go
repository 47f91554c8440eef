// Package policy holds every role rule of the service. Use cases ask
// Evaluate before acting; the transport layer never inspects roles.
package policy

import (
	"github.com/secmon-lab/safetydocs/pkg/domain/model/auth"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

// Action is the verb being authorised
type Action string

const (
	ActionRead          Action = "read"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionManageMembers Action = "manage_members"
	ActionAssignAreas   Action = "assign_areas"
)

// Kind names the type of resource an action targets
type Kind string

const (
	KindUser     Kind = "user"
	KindProject  Kind = "project"
	KindContent  Kind = "project_content"
	KindTemplate Kind = "template"
	KindArea     Kind = "area"
	KindAudit    Kind = "audit"
)

// Resource describes the target of an action. Owner and Member only matter
// for project-scoped kinds; Subject only for users.
type Resource struct {
	Kind Kind

	// Subject is the user a KindUser action targets.
	Subject types.UserID

	// CreatedBy and IsMember describe the actor's relation to a project.
	CreatedBy types.UserID
	IsMember  bool
}

// Decision is the outcome of Evaluate
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

var projectManagers = map[types.Role]bool{
	types.RoleAdmin:             true,
	types.RoleProjektleiter:     true,
	types.RoleTechnischerLeiter: true,
}

// Evaluate decides whether actor may perform action on resource.
func Evaluate(actor *auth.Actor, action Action, res Resource) Decision {
	if actor == nil {
		return deny("no actor")
	}

	switch res.Kind {
	case KindUser:
		return evaluateUser(actor, action, res)
	case KindProject:
		return evaluateProject(actor, action, res)
	case KindContent:
		if canSeeProject(actor, res) {
			return allow()
		}
		return deny("not a member of the project")
	case KindTemplate:
		if action == ActionRead || projectManagers[actor.Role] {
			return allow()
		}
		return deny("templates are maintained by project managers")
	case KindArea:
		if action == ActionRead || actor.Role == types.RoleAdmin {
			return allow()
		}
		return deny("areas are maintained by admins")
	case KindAudit:
		if action == ActionRead && actor.Role == types.RoleAdmin {
			return allow()
		}
		return deny("audit log is admin only")
	default:
		return deny("unknown resource kind")
	}
}

func evaluateUser(actor *auth.Actor, action Action, res Resource) Decision {
	self := res.Subject != "" && res.Subject == actor.UserID

	if action == ActionRead && self {
		return allow()
	}
	if action == ActionDelete && self {
		return deny("users cannot deactivate themselves")
	}
	if actor.Role == types.RoleAdmin {
		return allow()
	}
	return deny("user administration is admin only")
}

func evaluateProject(actor *auth.Actor, action Action, res Resource) Decision {
	switch action {
	case ActionCreate:
		if projectManagers[actor.Role] {
			return allow()
		}
		return deny("role may not create projects")

	case ActionRead:
		if canSeeProject(actor, res) {
			return allow()
		}
		return deny("not a member of the project")

	case ActionUpdate:
		if projectManagers[actor.Role] || res.CreatedBy == actor.UserID {
			return allow()
		}
		return deny("role may not update this project")

	case ActionDelete:
		if actor.Role == types.RoleAdmin {
			return allow()
		}
		return deny("projects can only be deleted by admins")

	case ActionManageMembers, ActionAssignAreas:
		if projectManagers[actor.Role] {
			return allow()
		}
		return deny("role may not manage project assignments")

	default:
		return deny("unknown action")
	}
}

func canSeeProject(actor *auth.Actor, res Resource) bool {
	return actor.Role == types.RoleAdmin ||
		(res.CreatedBy != "" && res.CreatedBy == actor.UserID) ||
		res.IsMember
}
