// Package session holds the client-side record of the authenticated user and
// the guard that keeps unauthenticated users out of protected views.
//
// The session is an explicit value handed through the call chain; there is no
// ambient global. It is created at login, consulted on every protected view
// entry, and destroyed on logout or credential expiry.
package session

import "errors"

// ErrExpired signals that the server rejected the session's credential.
// Callers clear the session and return to the login entry point; it is
// distinct from any generic request failure.
var ErrExpired = errors.New("session expired")

// UserSummary identifies the logged-in user.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the client-held proof of an authenticated login.
type Session struct {
	User  UserSummary
	Token string
}

// Navigator is the injected view-switching capability. The guard never
// renders anything itself; it only decides where the user goes.
type Navigator interface {
	ToLogin()
	ToMain()
}

// Guard gates protected views behind a present session.
type Guard struct {
	nav     Navigator
	current *Session
}

// NewGuard creates a guard with no active session.
func NewGuard(nav Navigator) *Guard {
	return &Guard{nav: nav}
}

// Begin installs the session created by a successful login or registration
// and moves the user to the main view.
func (g *Guard) Begin(s Session) {
	g.current = &s
	g.nav.ToMain()
}

// Require returns the active session for a protected view. When no session
// is present it redirects to login and returns false, and the view's effects
// must not run.
func (g *Guard) Require() (*Session, bool) {
	if g.current == nil {
		g.nav.ToLogin()
		return nil, false
	}
	return g.current, true
}

// Current returns the active session, or nil.
func (g *Guard) Current() *Session {
	return g.current
}

// Logout destroys the session and returns to login.
func (g *Guard) Logout() {
	g.current = nil
	g.nav.ToLogin()
}

// Expire destroys the session after the server rejected its credential.
// It is the caller's reaction to ErrExpired.
func (g *Guard) Expire() {
	g.current = nil
	g.nav.ToLogin()
}
