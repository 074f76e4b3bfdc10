package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionDebugRead))
	assert.False(t, HasPermission(RoleUser, PermissionDebugRead))
	assert.False(t, HasPermission("ghost", PermissionDebugRead))

	err := CheckPermission(RoleUser, PermissionDebugRead)
	var denied *PermissionDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, PermissionDebugRead, denied.Permission)
	assert.NoError(t, CheckPermission(RoleAdmin, PermissionDebugRead))

	assert.True(t, ValidRole(RoleUser))
	assert.False(t, ValidRole("root"))
}
