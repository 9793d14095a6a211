package domain

import "time"

// SecurityToken is an opaque bearer token issued for double-submit CSRF
// protection. Value is never inspected outside the token service;
// metadata travels alongside so transport code can shape cookies and
// responses without decoding it.
type SecurityToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	// Identity is the bound user ID, empty for anonymous sessions.
	Identity string
}

// TTL returns the remaining lifetime relative to issuance.
func (t SecurityToken) TTL() time.Duration {
	return t.ExpiresAt.Sub(t.IssuedAt)
}
