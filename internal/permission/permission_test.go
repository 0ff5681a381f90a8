package permission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// expected mirrors the static table so a table edit must be made twice to
// pass, once in code and once here.
var expected = map[Role]map[Action]bool{
	RoleAdmin: {
		ActionProductCreate: true, ActionProductUpdate: true, ActionProductDelete: true,
		ActionOrderCreate: true, ActionOrderUpdate: true, ActionOrderDelete: true,
		ActionUsersManage: true, ActionSettingsManage: true, ActionReportsView: true,
	},
	RoleStaff: {
		ActionProductCreate: true, ActionProductUpdate: true, ActionProductDelete: false,
		ActionOrderCreate: true, ActionOrderUpdate: true, ActionOrderDelete: true,
		ActionUsersManage: false, ActionSettingsManage: false, ActionReportsView: true,
	},
	RoleCustomer: {
		ActionProductCreate: false, ActionProductUpdate: false, ActionProductDelete: false,
		ActionOrderCreate: true, ActionOrderUpdate: false, ActionOrderDelete: false,
		ActionUsersManage: false, ActionSettingsManage: false, ActionReportsView: false,
	},
	RolePartner: {
		ActionProductCreate: true, ActionProductUpdate: true, ActionProductDelete: false,
		ActionOrderCreate: false, ActionOrderUpdate: false, ActionOrderDelete: false,
		ActionUsersManage: false, ActionSettingsManage: false, ActionReportsView: true,
	},
}

func TestHasPermissionExhaustive(t *testing.T) {
	for _, role := range Roles() {
		for _, action := range Actions() {
			granted, err := HasPermission(role, action)
			require.NoError(t, err, "role %s action %s", role, action)
			require.Equal(t, expected[role][action], granted, "role %s action %s", role, action)
		}
	}
}

func TestHasPermissionTotalOverClosedSets(t *testing.T) {
	require.Len(t, Actions(), 9)
	for _, role := range Roles() {
		require.Len(t, expected[role], len(Actions()), "expected table incomplete for %s", role)
	}
}

func TestHasPermissionUnknownRoleFails(t *testing.T) {
	for _, raw := range []Role{"", "SUPERUSER", "admin "} {
		granted, err := HasPermission(raw, ActionOrderCreate)
		require.ErrorIs(t, err, ErrUnknownRole)
		require.False(t, granted)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" staff ")
	require.NoError(t, err)
	require.Equal(t, RoleStaff, role)

	_, err = ParseRole("root")
	require.ErrorIs(t, err, ErrUnknownRole)
}
