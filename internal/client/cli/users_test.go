package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
)

func TestUsers_MarksCurrentAccount(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, users: services.Ok([]models.User{*adminUser, *staffUser})}
	a, out := startApp(t, coord, "")

	require.NoError(t, a.Users(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "staff")
	assert.Contains(t, s, "you")
	assert.Equal(t, 2, a.dash.Stats().TotalUsers)
}

func TestAddUser(t *testing.T) {
	stubPassword(t, "secret")
	coord := &fakeCoordinator{user: adminUser, account: services.Ok(&models.User{ID: "u-3"})}
	a, out := startApp(t, coord, "juan\nmanager\nstaff\n")

	require.NoError(t, a.AddUser(context.Background(), nil))

	assert.Contains(t, coord.calls, "AddUser:juan:staff")
	s := out.String()
	assert.Contains(t, s, "Role must be admin or staff")
	assert.Contains(t, s, "User added successfully")
}

func TestAddUser_Rejected(t *testing.T) {
	stubPassword(t, "secret")
	coord := &fakeCoordinator{user: adminUser, account: services.Fail[*models.User]("Username already exists")}
	a, out := startApp(t, coord, "admin\nadmin\n")

	require.Error(t, a.AddUser(context.Background(), nil))
	assert.Contains(t, out.String(), "Error: Username already exists")
}

func TestPasswd(t *testing.T) {
	stubPassword(t, "n3w")
	coord := &fakeCoordinator{user: adminUser, account: services.Ok(staffUser)}
	a, out := startApp(t, coord, "")

	require.ErrorIs(t, a.Passwd(context.Background(), nil), errUsage)
	require.NoError(t, a.Passwd(context.Background(), []string{"u-2"}))

	require.Len(t, coord.upatch, 1)
	require.NotNil(t, coord.upatch[0].Secret)
	assert.Equal(t, "n3w", *coord.upatch[0].Secret)
	assert.Nil(t, coord.upatch[0].Role)
	assert.Contains(t, out.String(), "Password updated successfully")
}

func TestRole(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, account: services.Ok(staffUser)}
	a, out := startApp(t, coord, "admin\n")

	require.NoError(t, a.Role(context.Background(), []string{"u-2", "STAFF"}))
	require.NoError(t, a.Role(context.Background(), []string{"u-2"}))
	require.Error(t, a.Role(context.Background(), []string{"u-2", "owner"}))

	require.Len(t, coord.upatch, 2)
	assert.Equal(t, models.RoleStaff, *coord.upatch[0].Role)
	assert.Equal(t, models.RoleAdmin, *coord.upatch[1].Role)
	assert.Contains(t, out.String(), "Role updated successfully")
	assert.Contains(t, out.String(), "Role must be admin or staff")
}

func TestDelUser(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, empty: services.Ok(struct{}{})}
	a, out := startApp(t, coord, "yes\n")

	require.Error(t, a.DelUser(context.Background(), []string{"u-1"}))
	assert.Contains(t, out.String(), "Error: Cannot delete your own account")

	require.NoError(t, a.DelUser(context.Background(), []string{"u-2"}))
	assert.Contains(t, coord.calls, "DeleteUser:u-2")
	assert.NotContains(t, coord.calls, "DeleteUser:u-1")
	assert.Contains(t, out.String(), "User deleted successfully")
}
