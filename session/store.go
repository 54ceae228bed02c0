package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/qbotools/quickbooksrelay/auth"
)

// Refresher mints a new credential set from a refresh token. It is
// satisfied by auth.Client.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (auth.Grant, error)
}

// Store serializes access to the current Session and its persistence.
// Handlers receive a *Store and read value copies; all mutation goes
// through Put or Refresh under the lock.
type Store struct {
	mu        sync.Mutex
	storage   Storage
	refresher Refresher
	current   Session
}

// NewStore loads the persisted session, initializing the empty state
// if no record exists.
func NewStore(storage Storage, refresher Refresher) (*Store, error) {
	s, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{storage: storage, refresher: refresher, current: s}, nil
}

// Current returns a copy of the session.
func (st *Store) Current() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// IsAuthenticated reports whether the held session has a bearer
// credential.
func (st *Store) IsAuthenticated() bool {
	return st.Current().IsAuthenticated()
}

// Put replaces the session wholesale and persists it. The in-memory
// session only changes once the record is durably written.
func (st *Store) Put(s Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.storage.Save(s); err != nil {
		return err
	}
	st.current = s
	return nil
}

// Refresh exchanges the held refresh token for a new credential set,
// replacing the access token, refresh token and expiry in place. State
// and realm are never rotated here. Without a refresh token the call
// fails with ErrUnauthenticated and no outbound call is made.
func (st *Store) Refresh(ctx context.Context) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current.RefreshToken == "" {
		return st.current, ErrUnauthenticated
	}
	grant, err := st.refresher.Refresh(ctx, st.current.RefreshToken)
	if err != nil {
		return st.current, fmt.Errorf("session refresh: %w", err)
	}
	next := st.current
	next.AccessToken = grant.AccessToken
	next.RefreshToken = grant.RefreshToken
	next.TokenExpiry = grant.ExpiresIn
	if err := st.storage.Save(next); err != nil {
		return st.current, err
	}
	st.current = next
	log.Info().Int("expires_in", next.TokenExpiry).Msg("session refreshed")
	return next, nil
}
