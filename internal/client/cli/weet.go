package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/witter/internal/client/models"
	"github.com/dmitrijs2005/witter/internal/client/services"
	"github.com/dmitrijs2005/witter/internal/client/toggle"
)

func renderWeet(w *models.Weet) string {
	marks := ""
	if w.Checks.Reweeted {
		marks += " [reweeted]"
	}
	if w.Checks.Favorited {
		marks += " [favorited]"
	}
	if w.Checks.Tabbed {
		marks += " [tabbed]"
	}
	return fmt.Sprintf("#%s @%s %s %s\n  %s\n  reweets: %d  favorites: %d  tabs: %d%s",
		w.ID, w.Author, w.Date, w.Time, w.Weet,
		w.Stats.Reweets, w.Stats.Favorites, w.Stats.Tabs, marks)
}

// Feed prints the weets of the accounts the user follows.
func (a *App) Feed(ctx context.Context) error {
	feed, err := a.weets.Feed(ctx)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if len(feed) == 0 {
		fmt.Println("Nothing here yet. Follow some accounts!")
		return nil
	}
	for i := range feed {
		fmt.Println(renderWeet(&feed[i]))
	}
	return nil
}

// Post prompts for weet content and submits the new-weet form.
func (a *App) Post(ctx context.Context) error {
	form := a.weets.CreateForm()

	content, err := getMultiline(a.reader, "What's happening?", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldWeet, content)

	if err := form.Submit(ctx); err != nil {
		printFormIssues(form, services.FieldWeet)
		return err
	}
	fmt.Println("Posted!")
	return nil
}

// Show prints a single weet with its current counts.
func (a *App) Show(ctx context.Context, id string) error {
	page, err := a.weets.GetPage(ctx, id)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	fmt.Println(renderWeet(page.Weet))
	return nil
}

// EditWeet fetches the weet, verifies the caller wrote it, and submits the
// corrected content.
func (a *App) EditWeet(ctx context.Context, id string) error {
	form, decision, err := a.weets.EditForm(ctx, id)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	if !decision.Allow {
		fmt.Println("You can only edit your own weets")
		return nil
	}

	fmt.Printf("Current text: %s\n", form.Value(services.FieldWeet))
	content, err := getMultiline(a.reader, "New text", os.Stdout)
	if err != nil {
		return err
	}
	form.Set(services.FieldWeet, content)

	if err := form.Submit(ctx); err != nil {
		printFormIssues(form, services.FieldWeet)
		return err
	}
	fmt.Println("Updated!")
	return nil
}

// DeleteWeet removes one of the caller's weets.
func (a *App) DeleteWeet(ctx context.Context, id string) error {
	if err := a.weets.Delete(ctx, id); err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	fmt.Println("Deleted")
	return nil
}

// ToggleWeet flips a reweet, favorite or tab relationship. The verb is the
// REPL command word; its "un" prefix selects the deactivation.
func (a *App) ToggleWeet(ctx context.Context, verb, id string) error {
	var (
		relation toggle.Relation
		action   = toggle.Activate
	)
	switch verb {
	case "reweet":
		relation = toggle.RelationReweet
	case "unreweet":
		relation, action = toggle.RelationReweet, toggle.Deactivate
	case "favorite":
		relation = toggle.RelationFavorite
	case "unfavorite":
		relation, action = toggle.RelationFavorite, toggle.Deactivate
	case "tab":
		relation = toggle.RelationTab
	case "untab":
		relation, action = toggle.RelationTab, toggle.Deactivate
	default:
		return fmt.Errorf("unknown toggle %q", verb)
	}

	page, err := a.weets.GetPage(ctx, id)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}

	var e *toggle.Entity
	switch relation {
	case toggle.RelationReweet:
		e = page.Reweet
	case toggle.RelationFavorite:
		e = page.Favorite
	default:
		e = page.Tab
	}

	if err := a.weets.Toggle(ctx, e, action); err != nil {
		fmt.Printf("error: %v\n", err)
		return err
	}
	fmt.Printf("%s: %d\n", relation, e.Count)
	return nil
}
