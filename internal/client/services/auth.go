package services

import (
	"context"
	"errors"
	"strings"

	"github.com/k4jlpg/inventory/internal/client/client"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/cryptox"
)

// SignIn authenticates against the local store first. Only when there is no
// local match and the service is reachable is the remote service asked; a
// remote success is mirrored into the local store so the next sign-in works
// offline.
func (c *Coordinator) SignIn(ctx context.Context, username, password string) Result[*models.User] {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Fail[*models.User]("Username and password are required")
	}

	u, err := c.store.AuthenticateUser(ctx, username, password)
	switch {
	case err == nil:
		if err := c.sessions.Save(ctx, cryptox.NewLocalToken(), *u); err != nil {
			c.log.Error(ctx, "failed to save session", "error", err)
			return Fail[*models.User]("Sign in failed: " + describe(err))
		}
		c.log.Info(ctx, "local sign in successful", "username", username)
		return Ok(u)
	case !isNotFound(err):
		c.log.Error(ctx, "local authentication failed", "error", err)
		return Fail[*models.User]("Sign in failed: " + describe(err))
	}

	if !c.checker.IsOnline(ctx) {
		return Fail[*models.User]("Invalid username or password (Offline mode)")
	}

	res, err := c.remote.SignIn(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) || errors.Is(err, common.ErrNotFound) {
			return Fail[*models.User]("Invalid username or password")
		}
		c.log.Warn(ctx, "online authentication failed", "username", username, "error", err)
		return Fail[*models.User]("Sign in failed: " + describe(err))
	}

	if err := c.store.MirrorUser(ctx, res.User, password); err != nil {
		// the remote session is still usable without the local copy
		c.log.Warn(ctx, "failed to cache user locally", "username", username, "error", err)
	}
	if err := c.sessions.Save(ctx, res.AccessToken, res.User); err != nil {
		c.log.Error(ctx, "failed to save session", "error", err)
		return Fail[*models.User]("Sign in failed: " + describe(err))
	}

	c.log.Info(ctx, "online sign in successful", "username", username)
	u = &res.User
	return Ok(u)
}

// SignUp registers a new account with the remote service.
func (c *Coordinator) SignUp(ctx context.Context, username, password string, role models.Role) Result[*models.User] {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || role == "" {
		return Fail[*models.User]("Username, password, and role are required")
	}
	role, err := models.ParseRole(string(role))
	if err != nil {
		return Fail[*models.User](describe(err))
	}

	u, err := c.remote.SignUp(ctx, username, password, role)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return Fail[*models.User](apiErr.Message)
		}
		c.log.Error(ctx, "sign up error", "error", err)
		return Fail[*models.User]("Sign up failed: " + describe(err))
	}

	c.log.Info(ctx, "sign up successful", "username", username)
	return Ok(u)
}

// CurrentUser returns the signed-in user, or nil without a valid session.
func (c *Coordinator) CurrentUser() *models.User {
	return c.sessions.CurrentUser()
}

// SignOut clears the current session.
func (c *Coordinator) SignOut(ctx context.Context) Result[struct{}] {
	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
		return Fail[struct{}]("Sign out failed: " + describe(err))
	}
	c.log.Info(ctx, "user signed out")
	return Ok(struct{}{})
}

// CheckSession validates the current session. Sessions minted by local
// sign-in are checked against the local store; remote sessions are checked
// with the service. A rejected session is cleared.
func (c *Coordinator) CheckSession(ctx context.Context) Result[*models.User] {
	token := c.sessions.AccessToken()
	if token == "" {
		return Fail[*models.User]("No session token")
	}

	var (
		u   *models.User
		err error
	)
	if cryptox.IsLocalToken(token) {
		u, err = c.checkLocalSession(ctx)
	} else {
		u, err = c.remote.CheckSession(ctx, token)
	}
	if err == nil {
		return Ok(u)
	}

	if clearErr := c.sessions.Clear(ctx); clearErr != nil {
		c.log.Error(ctx, "failed to clear session", "error", clearErr)
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) || isNotFound(err) {
		return Fail[*models.User]("Session expired")
	}
	c.log.Error(ctx, "session check error", "error", err)
	return Fail[*models.User]("Session check failed: " + describe(err))
}

func (c *Coordinator) checkLocalSession(ctx context.Context) (*models.User, error) {
	cur := c.sessions.CurrentUser()
	if cur == nil {
		return nil, common.ErrNotFound
	}
	return c.store.UserByID(ctx, cur.ID)
}
