package internal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ryob/pkg/logger"
	"github.com/dmitrymomot/ryob/pkg/session"
)

// SessionManager loads and flushes request sessions through a session.Store.
type SessionManager struct {
	store  session.Store
	logger *slog.Logger
}

// NewSessionManager creates a SessionManager over store.
func NewSessionManager(store session.Store) *SessionManager {
	return &SessionManager{store: store, logger: logger.NewNope()}
}

// SetLogger sets the logger for session events. Called by App after initialization.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

// Store returns the underlying store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

// LoadSession returns the request's session. A cookie that fails
// verification is discarded: the request continues with a fresh anonymous
// session and the stale cookie is replaced on the next save.
func (sm *SessionManager) LoadSession(r *http.Request) (*session.Session, error) {
	sess, err := sm.store.Load(r)
	if err == nil {
		return sess, nil
	}
	if errors.Is(err, session.ErrInvalidToken) {
		sm.logger.WarnContext(r.Context(), "discarding invalid session cookie", slog.Any("error", err))
		fresh := session.New()
		fresh.MarkDirty()
		return fresh, nil
	}
	return nil, err
}

// SaveSession writes sess to the response if it changed.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, sess *session.Session) error {
	if sess == nil || !sess.IsDirty() {
		return nil
	}
	return sm.store.Save(w, sess)
}
