package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/common"
)

// timeNow is a test seam for the session expiry check.
var timeNow = time.Now

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.authService.CurrentUser(); ok && u != nil {
		s = u.Name
		if s == "" {
			s = u.Email
		}
		s = fmt.Sprintf("%s [%s] ", s, u.Role)
	}
	if a.route != "" {
		s += a.route
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, revalidates a restored session and runs the REPL
// until the user leaves or input ends.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to %s CLI, %s (type 'help' for commands)\n", common.AppName, common.AppDescription)

	if a.isLoggedIn() {
		a.revalidate(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// revalidate asks the server for the current profile. A token whose exp
// claim has passed is dropped without a round trip; otherwise the auth
// service expires the session itself when the token is rejected.
func (a *App) revalidate(ctx context.Context) {
	if a.store.IsExpired(timeNow()) {
		if err := a.store.Expire(ctx); err != nil {
			a.logger.Warn(ctx, "cannot clear expired session", "error", err)
		}
		a.println("Session expired, please login again")
		return
	}

	a.store.SetLoading(true)
	defer a.store.SetLoading(false)

	u, err := a.authService.GetMe(ctx)
	switch {
	case err == nil:
		a.printf("Signed in as %s\n", u.Email)
	case errors.Is(err, apiclient.ErrSessionExpired):
		a.println("Session expired, please login again")
	default:
		a.logger.Warn(ctx, "session check failed", "error", err)
		a.println("Server unavailable, using cached session")
	}
}
