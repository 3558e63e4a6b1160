package cli

import (
	"context"
	"errors"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
	"github.com/k4jlpg/inventory/internal/shared"
)

// Users lists the local accounts.
func (a *App) Users(ctx context.Context, _ []string) error {
	var rerr error
	cerr := call(a, func() services.Result[[]models.User] { return a.coord.GetUsers(ctx) },
		func(r services.Result[[]models.User]) {
			if !r.Success {
				a.printf("Error: %s\n", r.Message)
				rerr = errors.New(r.Message)
				return
			}
			a.dash.SetUsers(r.Data)
			renderUsers(a.out, r.Data, a.coord.CurrentUser())
		})
	return errors.Join(cerr, rerr)
}

// AddUser creates a local account.
func (a *App) AddUser(ctx context.Context, _ []string) error {
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
	cerr := call(a, func() services.Result[*models.User] { return a.coord.AddUser(ctx, username, pw, role) },
		func(r services.Result[*models.User]) {
			rerr = report(a, r, "User added successfully")
		})
	return errors.Join(cerr, rerr)
}

// Passwd sets a new password for the given account.
func (a *App) Passwd(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: passwd <user-id>\n")
		return errUsage
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	pw := string(password)
	return a.updateUser(ctx, args[0], models.UserPatch{Secret: &pw}, "Password updated successfully")
}

// Role changes the role of the given account, prompting when it is not
// passed as the second argument.
func (a *App) Role(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		a.printf("Usage: role <user-id> [admin|staff]\n")
		return errUsage
	}

	var (
		role models.Role
		err  error
	)
	if len(args) == 2 {
		role, err = models.ParseRole(args[1])
		if err != nil {
			a.printf("Role must be admin or staff\n")
			return err
		}
	} else if role, err = getRole(a.reader, a.out); err != nil {
		return err
	}

	return a.updateUser(ctx, args[0], models.UserPatch{Role: &role}, "Role updated successfully")
}

func (a *App) updateUser(ctx context.Context, id string, patch models.UserPatch, success string) error {
	var rerr error
	cerr := call(a, func() services.Result[*models.User] { return a.coord.UpdateUser(ctx, id, patch) },
		func(r services.Result[*models.User]) {
			rerr = report(a, r, success)
		})
	return errors.Join(cerr, rerr)
}

// DelUser removes a local account after confirmation. The signed-in account
// cannot remove itself.
func (a *App) DelUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: deluser <user-id>\n")
		return errUsage
	}
	id := args[0]
	if u := a.coord.CurrentUser(); u != nil && u.ID == id {
		a.printf("Error: Cannot delete your own account\n")
		return errors.New("cannot delete own account")
	}

	ok, err := a.confirm("Delete user " + id + "?")
	if err != nil || !ok {
		return err
	}

	var rerr error
	cerr := call(a, func() services.Result[struct{}] { return a.coord.DeleteUser(ctx, id) },
		func(r services.Result[struct{}]) {
			rerr = report(a, r, "User deleted successfully")
		})
	return errors.Join(cerr, rerr)
}
