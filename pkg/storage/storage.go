package storage

import "context"

// RedirectStore holds the "redirect target after login" value. The session
// engine depends on it but does not own it. TakeRedirect must read and delete
// in one step so a target is returned at most once.
type RedirectStore interface {
	// SetRedirect records target for the given session, replacing any previous value.
	SetRedirect(ctx context.Context, sessionID, target string) error

	// TakeRedirect returns and removes the target for the session.
	// It returns ErrRedirectNotFound when there is none.
	TakeRedirect(ctx context.Context, sessionID string) (string, error)
}
