// Package session owns the authenticated identity of the running client.
//
// The store is the single place the bearer credential and current user are
// written: mutation happens only through Resume, Login, Register and Logout,
// while any component may read the current state. Consumers that need to
// react to identity changes subscribe for callbacks, making the store a
// single-writer broadcast of the session lifecycle.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chirag807/pdf-annotation-frontend/pkg/client"
	"github.com/chirag807/pdf-annotation-frontend/pkg/models"
)

// Listener observes session changes. It is called synchronously after every
// state change with the new state and the current user (nil unless
// authenticated).
type Listener func(state State, user *models.User)

// Store holds the current session and drives its lifecycle against the API.
type Store struct {
	api    *client.Client
	tokens TokenStore
	log    zerolog.Logger

	mu        sync.RWMutex
	state     State
	user      *models.User
	listeners []Listener
}

// NewStore creates a session store in the Unauthenticated state. Call Resume
// to pick up a previously persisted credential.
func NewStore(api *client.Client, tokens TokenStore, log zerolog.Logger) *Store {
	return &Store{
		api:    api,
		tokens: tokens,
		log:    log.With().Str("component", "session").Logger(),
		state:  StateUnauthenticated,
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the authenticated user, or nil outside Authenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Subscribe registers a listener for session changes. Listeners added after
// authentication do not receive a synthetic replay of past transitions.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// transition applies a state change and notifies listeners. An invalid
// transition is a programming error; it is logged and dropped rather than
// applied.
func (s *Store) transition(newState State, user *models.User) {
	s.mu.Lock()
	if err := s.state.validateTransitionTo(newState); err != nil {
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("refusing session transition")
		return
	}
	s.state = newState
	s.user = user
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.log.Debug().Stringer("state", newState).Msg("session state changed")
	for _, fn := range listeners {
		fn(newState, user)
	}
}

// Resume resolves a previously persisted credential, if any. With no stored
// token the store stays Unauthenticated. With one, the store enters
// Authenticating while the identity is fetched; any failure discards the
// stored credential and lands back in Unauthenticated. Resume never returns
// an error for a rejected credential, only for storage-layer problems.
func (s *Store) Resume(ctx context.Context) error {
	token, err := s.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		s.transition(StateUnauthenticated, nil)
		return nil
	}

	s.transition(StateAuthenticating, nil)
	s.api.SetAuthToken(token)

	user, err := s.api.Me(ctx)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Msg("stored credential rejected, discarding")
		s.api.SetAuthToken("")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Error().Err(clearErr).Msg("failed to clear stored credential")
		}
		s.transition(StateUnauthenticated, nil)
		return nil
	}

	s.transition(StateAuthenticated, user)
	return nil
}

// Login authenticates with email and password. On failure the session stays
// Unauthenticated and the returned error carries the server's message
// verbatim when one was provided.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	s.persist(resp)
	return nil
}

// Register creates an account and authenticates as it. Failure semantics
// match Login.
func (s *Store) Register(ctx context.Context, email, password, name string, role models.Role) error {
	resp, err := s.api.Register(ctx, email, password, name, role)
	if err != nil {
		return err
	}
	s.persist(resp)
	return nil
}

func (s *Store) persist(resp *client.AuthResponse) {
	if err := s.tokens.Save(resp.Token); err != nil {
		// The session is still valid for this run; only resumption is lost.
		s.log.Error().Err(err).Msg("failed to persist credential")
	}
	s.transition(StateAuthenticated, resp.User)
}

// Logout clears identity and credential unconditionally.
func (s *Store) Logout() {
	s.api.SetAuthToken("")
	if err := s.tokens.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear stored credential")
	}
	s.transition(StateUnauthenticated, nil)
}
