package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/witter/internal/client/services"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for the new account's fields and submits the sign-up
// form. Validation messages, local or backend, are printed per field; on
// success the session is already installed and persisted.
func (a *App) Register(ctx context.Context) error {
	form := a.auth.SignUpForm()

	handle, err := getSimpleText(a.reader, "Enter handle", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldHandle, handle)

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldUsername, username)

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldEmail, email)

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldPassword, password)

	if err := form.Submit(ctx); err != nil {
		printFormIssues(form, services.FieldHandle, services.FieldUsername,
			services.FieldEmail, services.FieldPassword)
		return err
	}

	fmt.Printf("Welcome, @%s!\n", a.auth.Current().Identity.Handle)
	return nil
}

// Login prompts for credentials and submits the log-in form. A rejection
// is printed under the password field.
func (a *App) Login(ctx context.Context) error {
	form := a.auth.LogInForm()

	handle, err := getSimpleText(a.reader, "Enter handle", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldHandle, handle)

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldPassword, password)

	if err := form.Submit(ctx); err != nil {
		printFormIssues(form, services.FieldHandle, services.FieldPassword)
		return err
	}

	fmt.Printf("Logged in as @%s\n", a.auth.Current().Identity.Handle)
	return nil
}

// Logout destroys the session, locally and durably.
func (a *App) Logout(ctx context.Context) error {
	a.auth.LogOut(ctx)
	fmt.Println("Logged out")
	return nil
}

// DeleteAccount asks for confirmation, then deletes the account and the
// session with it.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader,
		"This permanently deletes your account and all weets. Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Canceled")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	fmt.Println("Account deleted")
	return nil
}
