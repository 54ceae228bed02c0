package session

import "errors"

// ErrUnauthenticated is returned when an operation needs a credential
// the current session does not hold.
var ErrUnauthenticated = errors.New("not authenticated")

// Session is the single persisted OAuth credential set for the relay.
// State is the opaque anti-forgery token recorded at callback time and
// RealmID identifies the authorized QuickBooks company. TokenExpiry is
// the seconds-to-live reported by the provider at issuance, not an
// absolute timestamp.
type Session struct {
	State        string `json:"state"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	RealmID      string `json:"realm_id"`
	TokenExpiry  int    `json:"token_expiry"`
}

// IsAuthenticated reports whether the session holds a usable bearer
// credential.
func (s Session) IsAuthenticated() bool {
	return s.AccessToken != ""
}
