package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCanAdminWildcard(t *testing.T) {
	assert.True(t, RoleCan(RoleAdmin, ResourceUsers, ActionDelete))
	assert.True(t, RoleCan(RoleAdmin, ResourceEquipment, ActionCreate))
	assert.True(t, RoleCan(RoleAdmin, ResourceHistory, ActionRead))
}

func TestRoleCanSupervisor(t *testing.T) {
	assert.True(t, RoleCan(RoleSupervisor, ResourceEquipment, ActionCreate))
	assert.True(t, RoleCan(RoleSupervisor, ResourceMaintenance, ActionUpdate))
	assert.True(t, RoleCan(RoleSupervisor, ResourceHistory, ActionRead))

	// El supervisor no administra cuentas ni borra
	assert.False(t, RoleCan(RoleSupervisor, ResourceUsers, ActionRead))
	assert.False(t, RoleCan(RoleSupervisor, ResourceEquipment, ActionDelete))
}

func TestRoleCanOperator(t *testing.T) {
	assert.True(t, RoleCan(RoleOperator, ResourceFuel, ActionCreate))
	assert.True(t, RoleCan(RoleOperator, ResourceEquipment, ActionUpdate))

	assert.False(t, RoleCan(RoleOperator, ResourceDocuments, ActionUpdate))
	assert.False(t, RoleCan(RoleOperator, ResourceHistory, ActionRead))
}

func TestRoleCanViewer(t *testing.T) {
	assert.True(t, RoleCan(RoleViewer, ResourceEquipment, ActionRead))

	assert.False(t, RoleCan(RoleViewer, ResourceEquipment, ActionCreate))
	assert.False(t, RoleCan(RoleViewer, ResourceFuel, ActionCreate))
}

func TestRoleCanUnknown(t *testing.T) {
	assert.False(t, RoleCan("invitado", ResourceEquipment, ActionRead))
	assert.False(t, RoleCan("", ResourceEquipment, ActionRead))
	assert.False(t, RoleCan(RoleAdmin, "recurso_inexistente", ActionRead))
}

func TestKnownRoles(t *testing.T) {
	roles := KnownRoles()
	assert.Contains(t, roles, RoleAdmin)
	assert.Contains(t, roles, RoleSupervisor)
	assert.Contains(t, roles, RoleOperator)
	assert.Contains(t, roles, RoleViewer)
}
