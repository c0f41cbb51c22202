package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known session keys.
const (
	KeyCurrency   = "currency"
	KeyLang       = "lang"
	KeyShadowedBy = "shadowed_by"
	KeyMessages   = "messages"
)

// ShadowedBy identifies the administrator viewing the site as the session user.
type ShadowedBy struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is server-side per-browser state.
// Values are stored as JSON and written through to the store on every change.
type Session struct {
	ID        uuid.UUID                  `json:"id"`
	UserID    string                     `json:"user_id,omitempty"`
	Values    map[string]json.RawMessage `json:"values,omitempty"`
	StartedAt time.Time                  `json:"started_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
	ExpiresAt time.Time                  `json:"expires_at"`

	mu              sync.Mutex
	store           Store
	name            string
	ttl             time.Duration
	previousExpired bool
	fresh           bool
	onDestroy       []func()
}

func newSession(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Values:    make(map[string]json.RawMessage),
		StartedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
		ttl:       ttl,
	}
}

// Name returns the name the session was started with.
func (s *Session) Name() string {
	return s.name
}

// Get decodes the value stored under key into dst.
// It returns false when the key is absent or cannot be decoded into dst.
func (s *Session) Get(key string, dst any) bool {
	s.mu.Lock()
	raw, ok := s.Values[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Values[key]
	return ok
}

// Store sets key to value and saves the session.
func (s *Session) Store(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncodeValue, fmt.Errorf("key %q: %w", key, err))
	}

	s.mu.Lock()
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	s.Values[key] = raw
	s.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.save(ctx)
}

// Delete removes key and saves the session.
func (s *Session) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, ok := s.Values[key]
	delete(s.Values, key)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return s.save(ctx)
}

// Renew extends the session lifetime by its TTL from now.
func (s *Session) Renew(ctx context.Context) error {
	s.mu.Lock()
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(s.ttl)
	s.mu.Unlock()

	return s.save(ctx)
}

// IsLoggedIn reports whether a user is attached to the session.
func (s *Session) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UserID != ""
}

// CurrentUserID returns the logged-in user, or "" for anonymous sessions.
func (s *Session) CurrentUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UserID
}

// Login attaches userID to the session.
func (s *Session) Login(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.UserID = userID
	s.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.save(ctx)
}

// Logout detaches the user and drops any shadowing state.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.UserID = ""
	delete(s.Values, KeyShadowedBy)
	s.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.save(ctx)
}

// Shadow logs in as userID on behalf of by.
func (s *Session) Shadow(ctx context.Context, userID string, by ShadowedBy) error {
	raw, err := json.Marshal(by)
	if err != nil {
		return errors.Join(ErrEncodeValue, err)
	}

	s.mu.Lock()
	s.UserID = userID
	if s.Values == nil {
		s.Values = make(map[string]json.RawMessage)
	}
	s.Values[KeyShadowedBy] = raw
	s.UpdatedAt = time.Now()
	s.mu.Unlock()

	return s.save(ctx)
}

// ShadowedBy returns the administrator shadowing the session user, if any.
func (s *Session) ShadowedBy() (ShadowedBy, bool) {
	var by ShadowedBy
	if !s.Get(KeyShadowedBy, &by) || by.Name == "" {
		return ShadowedBy{}, false
	}
	return by, true
}

// IsExpired reports whether the session is past its expiry time.
func (s *Session) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().After(s.ExpiresAt)
}

// IsNew reports whether the session was created by the current request.
func (s *Session) IsNew() bool {
	return s.fresh
}

// PreviousExpired reports whether the browser came back with a session that had expired.
func (s *Session) PreviousExpired() bool {
	return s.previousExpired
}

// OnExpire runs fn right away if the session replaced an expired one.
func (s *Session) OnExpire(fn func()) {
	if s.previousExpired && fn != nil {
		fn()
	}
}

// OnDestroy registers fn to run when the session is destroyed.
func (s *Session) OnDestroy(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onDestroy = append(s.onDestroy, fn)
	s.mu.Unlock()
}

// destroy removes the session from its store and runs destroy callbacks.
func (s *Session) destroy(ctx context.Context) error {
	s.mu.Lock()
	callbacks := s.onDestroy
	s.onDestroy = nil
	store := s.store
	s.mu.Unlock()

	if store != nil {
		if err := store.Delete(ctx, s.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
	}

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

func (s *Session) save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, s); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}
