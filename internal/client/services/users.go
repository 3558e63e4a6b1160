package services

import (
	"context"

	"github.com/k4jlpg/inventory/internal/client/localstore"
	"github.com/k4jlpg/inventory/internal/client/models"
)

func (c *Coordinator) GetUsers(ctx context.Context) Result[[]models.User] {
	list, err := c.store.ListUsers(ctx)
	if err != nil {
		c.log.Error(ctx, "get users error", "error", err)
		return Fail[[]models.User]("Failed to load users: " + describe(err))
	}
	c.log.Debug(ctx, "loaded users", "count", len(list))
	return Ok(list)
}

func (c *Coordinator) AddUser(ctx context.Context, username, password string, role models.Role) Result[*models.User] {
	u, err := c.store.AddUser(ctx, username, password, role)
	if err != nil {
		if localstore.IsUsernameTaken(err) {
			return Fail[*models.User]("Username already exists")
		}
		c.log.Error(ctx, "add user error", "error", err)
		return Fail[*models.User]("Failed to add user: " + describe(err))
	}
	c.log.Info(ctx, "user added", "username", u.Username)
	return Ok(u)
}

// UpdateUser changes the password and/or role of a local user.
func (c *Coordinator) UpdateUser(ctx context.Context, id string, patch models.UserPatch) Result[*models.User] {
	if patch.IsEmpty() {
		return Fail[*models.User]("Failed to update user: nothing to update")
	}
	if err := patch.Validate(); err != nil {
		return Fail[*models.User]("Failed to update user: " + describe(err))
	}

	u, err := c.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return c.failUserUpdate(ctx, err)
	}
	c.log.Info(ctx, "user updated", "username", u.Username)
	return Ok(u)
}

func (c *Coordinator) failUserUpdate(ctx context.Context, err error) Result[*models.User] {
	if isNotFound(err) {
		return Fail[*models.User]("User not found")
	}
	c.log.Error(ctx, "update user error", "error", err)
	return Fail[*models.User]("Failed to update user: " + describe(err))
}

// DeleteUser removes a local user. The signed-in user cannot delete itself.
func (c *Coordinator) DeleteUser(ctx context.Context, id string) Result[struct{}] {
	if cur := c.sessions.CurrentUser(); cur != nil && cur.ID == id {
		return Fail[struct{}]("Cannot delete your own account")
	}
	if err := c.store.DeleteUser(ctx, id); err != nil {
		if isNotFound(err) {
			return Fail[struct{}]("User not found")
		}
		c.log.Error(ctx, "delete user error", "error", err)
		return Fail[struct{}]("Failed to delete user: " + describe(err))
	}
	c.log.Info(ctx, "user deleted", "id", id)
	return Ok(struct{}{})
}
