package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/witter/internal/client/models"
	"github.com/dmitrijs2005/witter/internal/client/services"
	"github.com/dmitrijs2005/witter/internal/client/toggle"
)

func renderAccount(acc *models.Account) string {
	s := fmt.Sprintf("@%s (%s)", acc.Handle, acc.Username)
	if acc.UserDescription != "" {
		s += "\n  " + acc.UserDescription
	}
	if acc.FollowStatus.IsFollower {
		s += "\n  [following]"
	}
	return s
}

// Profile prints a profile page with its weets.
func (a *App) Profile(ctx context.Context, handle string) error {
	page, err := a.profiles.GetPage(ctx, handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	fmt.Println(renderAccount(page.Account))

	weets, err := a.weets.Weets(ctx, handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	for i := range weets {
		fmt.Println(renderWeet(&weets[i]))
	}
	return nil
}

func (a *App) toggleFollow(ctx context.Context, handle string, action toggle.Action) error {
	page, err := a.profiles.GetPage(ctx, handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if err := a.profiles.ToggleFollow(ctx, page.Follow, action); err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if page.Follow.Active {
		fmt.Printf("Now following @%s\n", handle)
	} else {
		fmt.Printf("Unfollowed @%s\n", handle)
	}
	return nil
}

func (a *App) Follow(ctx context.Context, handle string) error {
	return a.toggleFollow(ctx, handle, toggle.Activate)
}

func (a *App) Unfollow(ctx context.Context, handle string) error {
	return a.toggleFollow(ctx, handle, toggle.Deactivate)
}

func (a *App) Followers(ctx context.Context, handle string) error {
	accounts, err := a.profiles.Followers(ctx, handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	for i := range accounts {
		fmt.Println(renderAccount(&accounts[i]))
	}
	return nil
}

func (a *App) Following(ctx context.Context, handle string) error {
	accounts, err := a.profiles.Following(ctx, handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	for i := range accounts {
		fmt.Println(renderAccount(&accounts[i]))
	}
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	accounts, err := a.profiles.Search(ctx, query)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No users found")
		return nil
	}
	for i := range accounts {
		fmt.Println(renderAccount(&accounts[i]))
	}
	return nil
}

// EditProfile walks the user through the profile edit form. Every field is
// prompted with its current value as the default; an empty answer keeps it.
func (a *App) EditProfile(ctx context.Context) error {
	cur := a.auth.Current()
	if cur == nil {
		fmt.Println("Log in first")
		return nil
	}

	form, decision, err := a.profiles.EditForm(ctx, cur.Identity.Handle)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if !decision.Allow {
		fmt.Println("You can only edit your own profile")
		return nil
	}

	textFields := []string{services.FieldUsername, services.FieldEmail, services.FieldUserDescription}
	for _, field := range textFields {
		prompt := fmt.Sprintf("Enter %s [%s]", field, form.Value(field))
		answer, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return err
		}
		if answer != "" {
			form.Set(field, answer)
		}
	}

	fmt.Println("Current password (required to save):")
	oldPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldOldPassword, oldPassword)

	newPassword, err := getSimpleText(a.reader, "New password (leave empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if newPassword != "" {
		form.Set(services.FieldNewPassword, newPassword)
	}

	if err := form.Submit(ctx); err != nil {
		printFormIssues(form, services.FieldUsername, services.FieldEmail,
			services.FieldUserDescription, services.FieldOldPassword, services.FieldNewPassword)
		return err
	}
	fmt.Println("Profile updated")
	return nil
}
