package permission

import (
	"fmt"
	"strings"
)

// Role is one of the closed set of permission profiles assigned to a user.
type Role string

// The closed role set. Any other value is a configuration defect.
const (
	RoleAdmin    Role = "ADMIN"
	RoleStaff    Role = "STAFF"
	RoleCustomer Role = "CUSTOMER"
	RolePartner  Role = "PARTNER"
)

// Action identifies an operation gated by the permission table.
type Action string

// The closed action vocabulary.
const (
	ActionProductCreate  Action = "product:create"
	ActionProductUpdate  Action = "product:update"
	ActionProductDelete  Action = "product:delete"
	ActionOrderCreate    Action = "order:create"
	ActionOrderUpdate    Action = "order:update"
	ActionOrderDelete    Action = "order:delete"
	ActionUsersManage    Action = "users:manage"
	ActionSettingsManage Action = "settings:manage"
	ActionReportsView    Action = "reports:view"
)

// ErrUnknownRole marks a role outside the closed set. This is a hard failure
// rather than a silent deny so a misconfigured deployment cannot masquerade
// as a permission rejection.
var ErrUnknownRole = fmt.Errorf("unknown role")

// table is the static role/action mapping. It is total over the closed role
// set and never varies per organization or per process.
var table = map[Role]map[Action]struct{}{
	RoleAdmin: actionSet(
		ActionProductCreate, ActionProductUpdate, ActionProductDelete,
		ActionOrderCreate, ActionOrderUpdate, ActionOrderDelete,
		ActionUsersManage, ActionSettingsManage, ActionReportsView,
	),
	RoleStaff: actionSet(
		ActionProductCreate, ActionProductUpdate,
		ActionOrderCreate, ActionOrderUpdate, ActionOrderDelete,
		ActionReportsView,
	),
	RoleCustomer: actionSet(
		ActionOrderCreate,
	),
	RolePartner: actionSet(
		ActionProductCreate, ActionProductUpdate,
		ActionReportsView,
	),
}

// HasPermission reports whether the static table lists action under role.
// The check is total: every pair over the closed sets resolves to a boolean,
// and an out-of-set role returns ErrUnknownRole instead of false.
func HasPermission(role Role, action Action) (bool, error) {
	allowed, ok := table[role]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
	}
	_, granted := allowed[action]
	return granted, nil
}

// ParseRole normalizes a raw role string from session claims into the closed
// set. An empty or unrecognized value returns ErrUnknownRole.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleCustomer:
		return RoleCustomer, nil
	case RolePartner:
		return RolePartner, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// Roles returns the closed role set in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStaff, RoleCustomer, RolePartner}
}

// Actions returns the closed action vocabulary in a stable order.
func Actions() []Action {
	return []Action{
		ActionProductCreate, ActionProductUpdate, ActionProductDelete,
		ActionOrderCreate, ActionOrderUpdate, ActionOrderDelete,
		ActionUsersManage, ActionSettingsManage, ActionReportsView,
	}
}

func actionSet(actions ...Action) map[Action]struct{} {
	set := make(map[Action]struct{}, len(actions))
	for _, action := range actions {
		set[action] = struct{}{}
	}
	return set
}
