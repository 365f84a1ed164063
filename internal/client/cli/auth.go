package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/scholarhub/internal/formatx"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

var (
	errEmptyField   = errors.New("value must not be empty")
	errInvalidEmail = errors.New("invalid email address")
)

func (a *App) promptRequired(prompt string) (string, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errEmptyField
	}
	return s, nil
}

func (a *App) promptEmail() (string, error) {
	email, err := a.promptRequired("Enter email")
	if err != nil {
		return "", err
	}
	if !formatx.IsValidEmail(email) {
		return "", errInvalidEmail
	}
	return email, nil
}

// Register prompts for name, email and password and creates an account.
// On success the new session is active immediately.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := a.promptRequired("Enter name")
	if err != nil {
		return err
	}
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", resp.User.Name)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	resp, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.printf("Logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
	return nil
}

// Logout ends the session. It never fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	a.authService.Logout(ctx)
	a.println("Logged out")
	return nil
}

// WhoAmI fetches the current profile from the server.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.authService.GetMe(ctx)
	if err != nil {
		return err
	}

	a.printf("ID:      %s\n", u.ID)
	a.printf("Name:    %s\n", u.Name)
	a.printf("Email:   %s\n", u.Email)
	a.printf("Role:    %s\n", formatx.Capitalize(string(u.Role)))
	a.printf("Created: %s\n", formatx.FormatDateTime(u.CreatedAt))
	return nil
}
