package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/witter/internal/client/forms"
)

// Root starts the interactive loop. It blocks until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to Witter CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// printFormIssues renders the current validation state of a form: the
// generic notice first, then every message grouped under its field.
func printFormIssues(form *forms.Form, fields ...string) {
	if notice := form.Notice(); notice != "" {
		printlnFn(notice)
	}
	res := form.Result()
	for _, field := range fields {
		fr, ok := res[field]
		if !ok || fr.IsValid {
			continue
		}
		for _, msg := range fr.Messages {
			printlnFn(fmt.Sprintf("%s: %s", field, msg.Text))
		}
	}
}
