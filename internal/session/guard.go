package session

import "context"

// Route is a navigation destination with its access flags.
type Route struct {
	Path          string
	RequiresAdmin bool
	RequiresGuest bool
	// Public routes are reachable before the session resolves.
	Public bool
}

// Decision is the outcome of a guard check. Redirect is set when Allow is false.
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard evaluates routes against a session.
type Guard struct {
	LoginPath     string
	DashboardPath string
}

func NewGuard(loginPath, dashboardPath string) Guard {
	if loginPath == "" {
		loginPath = "/login"
	}
	if dashboardPath == "" {
		dashboardPath = "/admin/main-categories"
	}
	return Guard{LoginPath: loginPath, DashboardPath: dashboardPath}
}

// Check waits for sess to resolve unless route is public, then decides.
// The only error is ctx ending while waiting.
func (g Guard) Check(ctx context.Context, sess *Session, route Route) (Decision, error) {
	if route.Public {
		return Decision{Allow: true}, nil
	}
	snap, err := sess.Wait(ctx)
	if err != nil {
		return Decision{}, err
	}
	switch {
	case route.RequiresAdmin && !snap.IsAdmin:
		return Decision{Redirect: g.LoginPath}, nil
	case route.RequiresGuest && snap.IsAuthenticated:
		return Decision{Redirect: g.DashboardPath}, nil
	}
	return Decision{Allow: true}, nil
}
