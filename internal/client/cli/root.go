package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Email)
}

// sessionLost forgets the cached user once the backend stops accepting the
// session, so the prompt no longer shows a stale email.
func (a *App) sessionLost() {
	a.user = nil
}

// restoreSession picks up a session saved by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.backend.CurrentUser(ctx)
	if err != nil {
		printlnFn("Error:", describe(err))
		return
	}
	if u != nil {
		a.user = u
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}
}

func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to the task manager CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
