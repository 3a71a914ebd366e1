package domain

import "time"

type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
)

// SessionEvent announces that a user's session started or ended.
// User is nil for SessionSignedOut. TokenID names the access token the
// session runs on; an empty TokenID on sign-out ends every session of UserID.
type SessionEvent struct {
	Kind    SessionEventKind `json:"kind"`
	UserID  string           `json:"userId"`
	TokenID string           `json:"tokenId,omitempty"`
	User    *User            `json:"user,omitempty"`
	At      time.Time        `json:"at"`
}

// Ends reports whether ev terminates the session running on tokenID.
func (ev SessionEvent) Ends(tokenID string) bool {
	return ev.Kind == SessionSignedOut && (ev.TokenID == "" || ev.TokenID == tokenID)
}
