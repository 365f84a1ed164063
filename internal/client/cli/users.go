package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/models"
	"github.com/dmitrijs2005/scholarhub/internal/common"
	"github.com/dmitrijs2005/scholarhub/internal/formatx"
)

const generatedPasswordLength = 12

var errInvalidRole = fmt.Errorf("role must be %q or %q", models.RoleUser, models.RoleAdmin)

// ListUsers prints one page of user accounts.
func (a *App) ListUsers(ctx context.Context, args []string) error {
	page, err := pageArg(args, "users [page]")
	if err != nil {
		return err
	}

	users, err := a.userService.List(ctx)
	if err != nil {
		return err
	}
	a.Navigate(endpoints.RouteUsers)

	if len(users) == 0 {
		a.println("No users")
		return nil
	}

	rows, pages := paginate(users, page, common.DefaultPageSize)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.ID,
			formatx.PlainText(u.Name),
			u.Email,
			formatx.Label(string(u.Role)),
			formatx.FormatDate(u.CreatedAt),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Page %d of %d (%d users)\n", page, pages, len(users))
	return nil
}

// ShowUser prints a single user account.
func (a *App) ShowUser(ctx context.Context, args []string) error {
	id, err := idArg(args, "user <id>")
	if err != nil {
		return err
	}

	u, err := a.userService.GetByID(ctx, id)
	if err != nil {
		return err
	}

	a.printf("ID:      %s\n", u.ID)
	a.printf("Name:    %s\n", formatx.PlainText(u.Name))
	a.printf("Email:   %s\n", u.Email)
	a.printf("Role:    %s\n", formatx.Label(string(u.Role)))
	a.printf("Created: %s\n", formatx.FormatDateTime(u.CreatedAt))
	a.printf("Updated: %s\n", formatx.FormatDateTime(u.UpdatedAt))
	return nil
}

// userInput prompts for account fields, offering cur as defaults.
func (a *App) userInput(cur models.Profile) (models.UserInput, error) {
	var in models.UserInput
	var err error

	if in.Name, err = getTextWithDefault(a.reader, "Name", cur.Name, a.out); err != nil {
		return in, err
	}
	if in.Name == "" {
		return in, fmt.Errorf("name: %w", errEmptyField)
	}

	if in.Email, err = getTextWithDefault(a.reader, "Email", cur.Email, a.out); err != nil {
		return in, err
	}
	if !formatx.IsValidEmail(in.Email) {
		return in, errInvalidEmail
	}

	role := string(cur.Role)
	if role == "" {
		role = string(models.RoleUser)
	}
	if role, err = getTextWithDefault(a.reader, "Role (user/admin)", role, a.out); err != nil {
		return in, err
	}
	in.Role = models.Role(role)
	if in.Role != models.RoleUser && in.Role != models.RoleAdmin {
		return in, errInvalidRole
	}
	return in, nil
}

// AddUser creates an account. A blank password is replaced by a generated
// one, which is printed once.
func (a *App) AddUser(ctx context.Context, _ []string) error {
	a.Navigate(endpoints.RouteUsers)

	in, err := a.userInput(models.Profile{})
	if err != nil {
		return err
	}

	if in.Password, err = getPassword("Password (empty generates one)", a.out); err != nil {
		return err
	}
	generated := in.Password == ""
	if generated {
		in.Password = formatx.RandomString(generatedPasswordLength)
	}

	u, err := a.userService.Create(ctx, in)
	if err != nil {
		return err
	}

	a.printf("User %s created\n", u.ID)
	if generated {
		a.printf("Generated password: %s\n", in.Password)
	}
	return nil
}

// EditUser updates an account. A blank password keeps the current one.
func (a *App) EditUser(ctx context.Context, args []string) error {
	id, err := idArg(args, "edituser <id>")
	if err != nil {
		return err
	}

	cur, err := a.userService.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Navigate(endpoints.RouteUsers)

	in, err := a.userInput(*cur)
	if err != nil {
		return err
	}
	if in.Password, err = getPassword("New password (empty keeps the current one)", a.out); err != nil {
		return err
	}

	if _, err := a.userService.Update(ctx, id, in); err != nil {
		return err
	}

	a.printf("User %s updated\n", id)
	return nil
}

var errDeleteSelf = errors.New("cannot delete the signed-in account")

// DeleteUser removes an account after confirmation. The signed-in account
// cannot be deleted.
func (a *App) DeleteUser(ctx context.Context, args []string) error {
	id, err := idArg(args, "deluser <id>")
	if err != nil {
		return err
	}
	if u, ok := a.authService.CurrentUser(); ok && u != nil && u.ID.String() == id {
		return errDeleteSelf
	}

	ok, err := a.confirm(fmt.Sprintf("Delete user %s?", id))
	if err != nil || !ok {
		return err
	}

	resp, err := a.userService.Delete(ctx, id)
	if err != nil {
		return err
	}
	if resp != nil && resp.Message != "" {
		a.println(formatx.PlainText(resp.Message))
	} else {
		a.printf("User %s deleted\n", id)
	}
	return nil
}
