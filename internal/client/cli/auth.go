package cli

import (
	"context"
	"errors"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
	"github.com/k4jlpg/inventory/internal/shared"
)

// getSimpleText, getPassword and getRole are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getRole       = GetRole
)

// Login prompts for credentials and signs in. Local accounts are matched
// first; the remote service is asked only when it is reachable.
//
// The raw terminal buffer is zeroed before returning. The string copy
// handed to the coordinator lives until the garbage collector reclaims it.
func (a *App) Login(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	pw := string(password)
	return call(a, func() services.Result[*models.User] { return a.coord.SignIn(ctx, username, pw) },
		func(r services.Result[*models.User]) {
			if !r.Success {
				a.printf("Login unsuccessful: %s\n", r.Message)
				return
			}
			a.printf("Signed in as %s (%s)\n", r.Data.Username, r.Data.Role)
		})
}

// Logout clears the session and the dashboard collections.
func (a *App) Logout(ctx context.Context, _ []string) error {
	var err error
	cerr := call(a, func() services.Result[struct{}] { return a.coord.SignOut(ctx) },
		func(r services.Result[struct{}]) {
			err = report(a, r, "Logged out")
			if r.Success {
				a.dash.SetProducts(nil)
				a.dash.SetUsers(nil)
			}
		})
	return errors.Join(cerr, err)
}

// Whoami prints the signed-in user.
func (a *App) Whoami(_ context.Context, _ []string) error {
	u := a.coord.CurrentUser()
	if u == nil {
		a.printf("Not signed in\n")
		return nil
	}
	a.printf("%s (%s), id %s\n", u.Username, u.Role, u.ID)
	return nil
}

// Check validates the current session; a rejected session is signed out.
func (a *App) Check(ctx context.Context, _ []string) error {
	var err error
	cerr := call(a, func() services.Result[*models.User] { return a.coord.CheckSession(ctx) },
		func(r services.Result[*models.User]) {
			if !r.Success {
				a.printf("Session invalid: %s\n", r.Message)
				err = errors.New(r.Message)
				return
			}
			a.printf("Session valid for %s\n", r.Data.Username)
		})
	return errors.Join(cerr, err)
}

// SignUp registers a new account with the remote service.
func (a *App) SignUp(ctx context.Context, _ []string) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)
	role, err := getRole(a.reader, a.out)
	if err != nil {
		return err
	}

	pw := string(password)
	var rerr error
	cerr := call(a, func() services.Result[*models.User] { return a.coord.SignUp(ctx, username, pw, role) },
		func(r services.Result[*models.User]) {
			rerr = report(a, r, "Account created, you can now log in")
		})
	return errors.Join(cerr, rerr)
}

// InitRemote seeds the remote service with its default users and products.
func (a *App) InitRemote(ctx context.Context, _ []string) error {
	var rerr error
	cerr := call(a, func() services.Result[string] { return a.coord.InitializeRemote(ctx) },
		func(r services.Result[string]) {
			rerr = report(a, r, r.Data)
		})
	return errors.Join(cerr, rerr)
}
