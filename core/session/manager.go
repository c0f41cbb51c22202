package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goteo/foundation/core/cookie"
	"github.com/goteo/foundation/core/logger"
)

// CookieStore carries the signed session identifier.
type CookieStore interface {
	SetSigned(w http.ResponseWriter, r *http.Request, name, value string, opts ...cookie.Option) error
	GetSigned(r *http.Request, name string) (string, error)
	Delete(w http.ResponseWriter, name string)
}

// Manager starts, resumes and destroys sessions.
type Manager struct {
	store   Store
	cookies CookieStore
	logger  *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for store failures that are not returned to the caller.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewManager creates a session manager over store, keeping the session ID in a signed cookie.
func NewManager(store Store, cookies CookieStore, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:   store,
		cookies: cookies,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start resumes the session named name or starts a new one with the given idle ttl.
//
// A browser presenting a valid cookie for a session that no longer exists or
// has expired gets a fresh session whose OnExpire callbacks fire.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, name string, ttl time.Duration) (*Session, error) {
	ctx := r.Context()

	id, hadCookie := m.sessionID(r, name)
	if hadCookie {
		sess, err := m.store.Get(ctx, id)
		switch {
		case err == nil && !sess.IsExpired():
			m.bind(sess, name, ttl)
			return sess, nil
		case err == nil:
			if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
				m.logger.WarnContext(ctx, "session: delete expired", logger.Error(err))
			}
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	sess := newSession(ttl)
	sess.previousExpired = hadCookie
	sess.fresh = true
	m.bind(sess, name, ttl)

	if err := sess.save(ctx); err != nil {
		return nil, err
	}
	if err := m.cookies.SetSigned(w, r, name, sess.ID.String()); err != nil {
		return nil, err
	}
	return sess, nil
}

// Destroy ends sess: it is removed from the store, its cookie is cleared and
// its destroy callbacks run.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	m.cookies.Delete(w, sess.name)
	return sess.destroy(ctx)
}

// sessionID returns the identifier carried by the request, if its cookie is authentic.
func (m *Manager) sessionID(r *http.Request, name string) (uuid.UUID, bool) {
	value, err := m.cookies.GetSigned(r, name)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := ParseID(value)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (m *Manager) bind(sess *Session, name string, ttl time.Duration) {
	sess.store = m.store
	sess.name = name
	sess.ttl = ttl
}

// ParseID parses a session identifier.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
