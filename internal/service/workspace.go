package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"coinnecta/internal/model"
	"coinnecta/internal/repository"
	"coinnecta/internal/session"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// EventPublisher pushes change notifications to connected dashboards.
type EventPublisher interface {
	Publish(event string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

// Workspace owns the single operator session. Reads see a consistent value; writes
// apply to a clone that replaces the session only when the change succeeds.
// Persistence is best-effort: a failed save is logged and the in-memory session stays authoritative.
type Workspace struct {
	mu      sync.RWMutex
	current *session.Session
	version uint64 // bumped on every successful Update

	key    string
	states repository.StateRepository
	audits repository.AuditRepository
	tx     repository.TransactionManager
	log    logrus.FieldLogger
}

func NewWorkspace(key string, states repository.StateRepository, audits repository.AuditRepository, tx repository.TransactionManager, log logrus.FieldLogger) *Workspace {
	return &Workspace{
		current: session.New(),
		key:     key,
		states:  states,
		audits:  audits,
		tx:      tx,
		log:     log,
	}
}

// Load replaces the session with the stored one. A missing or unreadable blob leaves defaults in place.
func (w *Workspace) Load(ctx context.Context) error {
	data, err := w.states.Get(ctx, w.key)
	if errors.Is(err, repository.ErrStateNotFound) {
		w.log.WithField("key", w.key).Info("no stored workspace, starting with defaults")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load workspace: %w", err)
	}

	s, err := session.Decode(data)
	if err != nil {
		w.log.WithError(err).WithField("key", w.key).Error("stored workspace is unreadable, starting with defaults")
		return nil
	}

	w.mu.Lock()
	w.current = s
	w.version++
	w.mu.Unlock()

	w.log.WithFields(logrus.Fields{
		"products": len(s.Products),
		"imports":  len(s.Imports),
	}).Info("workspace loaded")
	return nil
}

// View runs fn against the current session. fn must not retain or modify it.
func (w *Workspace) View(fn func(s *session.Session)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.current)
}

// ViewVersion is View plus the version of the session fn sees.
func (w *Workspace) ViewVersion(fn func(s *session.Session, version uint64)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.current, w.version)
}

// Version identifies the current session value; it changes on every successful Update.
func (w *Workspace) Version() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.version
}

// Update runs fn against a clone of the session and swaps it in when fn succeeds.
// The returned audit entry, if any, is stored with the new state.
func (w *Workspace) Update(ctx context.Context, fn func(s *session.Session) (*model.AuditLog, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.current.Clone()
	entry, err := fn(next)
	if err != nil {
		return err
	}
	w.current = next
	w.version++
	w.persist(ctx, next, entry)
	return nil
}

func (w *Workspace) persist(ctx context.Context, s *session.Session, entry *model.AuditLog) {
	data, err := session.Encode(s)
	if err != nil {
		w.log.WithError(err).Error("failed to encode workspace")
		return
	}

	err = w.tx.RunInTx(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		if err := w.states.Put(txCtx, w.key, data); err != nil {
			return err
		}
		if entry != nil {
			return w.audits.Log(txCtx, entry)
		}
		return nil
	})
	if err != nil {
		w.log.WithError(err).WithField("key", w.key).Error("failed to save workspace")
	}
}

// auditEntry builds an audit log entry with a JSON details payload.
func auditEntry(actor, action string, entityID model.ID, entityName string, details interface{}) *model.AuditLog {
	detailsJSON, _ := json.Marshal(details)
	return &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   entityID.String(),
		EntityName: entityName,
		Details:    string(detailsJSON),
	}
}
