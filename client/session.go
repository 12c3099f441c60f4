// Package client is the in-process side of GoOman: the session gate, the auth surface
// and the booking submission form, talking to the backend through API.
package client

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RouteSignIn   = "/auth"
	RouteBookings = "/bookings"
)

var ErrUnauthorized = errors.New("sign in required")

// Navigator moves the user to another route.
type Navigator interface {
	Navigate(route string)
}

// Identity is the signed-in user.
type Identity struct {
	ID       string
	Email    string
	FullName string
}

type EventKind int

const (
	EventSignedIn EventKind = iota + 1
	EventSignedOut
	EventTokenRefreshed
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	case EventTokenRefreshed:
		return "token_refreshed"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Event is one session change. Identity is nil once the session is gone.
type Event struct {
	Kind     EventKind
	Identity *Identity
}

type tokens struct {
	access    string
	refresh   string
	expiresAt time.Time
}

// Session holds the current identity and its tokens. Only apply mutates it.
type Session struct {
	mu        sync.RWMutex
	identity  *Identity
	tokens    tokens
	navigator Navigator

	subscribers map[int]chan Event
	nextID      int
}

func NewSession(navigator Navigator) *Session {
	return &Session{
		navigator:   navigator,
		subscribers: make(map[int]chan Event),
	}
}

// Current returns the latest known identity.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return Identity{}, false
	}

	return *s.identity, true
}

// RequireOrRedirect returns the identity, or sends the user to the sign-in route and
// returns ErrUnauthorized.
func (s *Session) RequireOrRedirect() (Identity, error) {
	identity, ok := s.Current()
	if ok {
		return identity, nil
	}

	if s.navigator != nil {
		s.navigator.Navigate(RouteSignIn)
	}

	return Identity{}, ErrUnauthorized
}

// Forget drops the identity and its tokens.
func (s *Session) Forget() {
	s.apply(EventSignedOut, nil, tokens{})
}

// Subscribe delivers every later session change on the returned channel. When the buffer
// is full the oldest pending event is dropped. cancel closes the channel.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan Event, buffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once

	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			close(ch)
			s.mu.Unlock()
		})
	}

	return ch, cancel
}

// ExpiresAt is when the current access token stops being accepted. Zero when signed out.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokens.expiresAt
}

func (s *Session) accessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokens.access
}

func (s *Session) refreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokens.refresh
}

func (s *Session) apply(kind EventKind, identity *Identity, next tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = identity
	s.tokens = next

	event := Event{Kind: kind}
	if identity != nil {
		copied := *identity
		event.Identity = &copied
	}

	for _, ch := range s.subscribers {
		publish(ch, event)
	}

	log.Debug().Str("event", kind.String()).Bool("signed_in", identity != nil).Msg("session changed")
}

func publish(ch chan Event, event Event) {
	for {
		select {
		case ch <- event:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
