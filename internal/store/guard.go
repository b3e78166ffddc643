package store

import "github.com/julianstephens/aidant/internal/models"

// Route is the screen a user is allowed to reach.
type Route int

const (
	RouteLogin Route = iota
	RouteOnboarding
	RouteApp
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteOnboarding:
		return "onboarding"
	default:
		return "app"
	}
}

// Resolve sends users without a session to login, users who have not
// finished onboarding to the wizard, and everyone else to the app.
func Resolve(session models.Session, hasSession bool, profile models.Profile) Route {
	if !hasSession || session.Email == "" {
		return RouteLogin
	}
	if !profile.OnboardingComplete {
		return RouteOnboarding
	}
	return RouteApp
}
