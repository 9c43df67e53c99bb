package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id can name a session. IDs are also file names
// for FilePersistence.
func ValidID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// Manager owns the running worlds. Sessions are keyed case-insensitively;
// with persistence attached every change is written through and sessions
// missing from memory are loaded on demand.
type Manager struct {
	worlds      service.WorldFactory
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory session manager
func NewManager(worlds service.WorldFactory) *Manager {
	return NewManagerWithPersistence(worlds, nil)
}

// NewManagerWithPersistence creates a session manager backed by persistence
func NewManagerWithPersistence(worlds service.WorldFactory, persistence SessionPersistence) *Manager {
	return &Manager{
		worlds:      worlds,
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

func key(id string) string { return strings.ToLower(id) }

// Create builds a world for config and registers it under id. An empty ID
// gets a generated 4-character one.
func (m *Manager) Create(id, configID string, config *engine.WorldConfig) (*service.Session, error) {
	if id != "" && !ValidID(id) {
		return nil, ErrInvalidSessionID
	}

	// map loading reads files, so the world is built outside the lock
	eng, graph, err := m.worlds.NewWorld(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
		for m.sessionExists(id) {
			id = m.generateSessionID()
		}
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Engine:         eng,
		Scene:          graph,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key(id)] = session
	m.persist(session, "on creation")

	return session, nil
}

// Get returns the session for id, loading it from persistence when it is
// not in memory
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[key(id)]
	m.mu.RUnlock()
	if ok {
		return session, nil
	}
	if m.persistence == nil || !ValidID(id) {
		return nil, ErrSessionNotFound
	}

	loaded, err := m.persistence.Load(id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another caller may have loaded it meanwhile
	if cached, ok := m.sessions[key(id)]; ok {
		return cached, nil
	}
	m.sessions[key(id)] = loaded
	return loaded, nil
}

func (m *Manager) GetOrCreate(id, configID string, config *engine.WorldConfig) (*service.Session, error) {
	session, err := m.Get(id)
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, configID, config)
	}
	return session, err
}

// List returns the sessions held in memory
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inMemory := m.removeLocked(id)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !inMemory {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteFromMemory forgets a session but keeps its persisted copy
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.removeLocked(id) {
		return ErrSessionNotFound
	}
	return nil
}

func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[key(id)]
	if !ok {
		return ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	m.persist(session, "after access update")
	return nil
}

// Save writes one session through to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, ok := m.sessions[key(id)]
	m.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	return m.persistence.Save(session)
}

// CleanupExpiredSessions drops sessions idle for longer than maxAge.
// Persisted copies are kept and reload on the next Get.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for k, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of sessions in memory
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns 4 random hex characters
func (m *Manager) generateSessionID() string {
	b := make([]byte, 2)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// sessionExists reports whether id is in memory; callers hold the lock
func (m *Manager) sessionExists(id string) bool {
	_, ok := m.sessions[key(id)]
	return ok
}

func (m *Manager) removeLocked(id string) bool {
	if _, ok := m.sessions[key(id)]; !ok {
		return false
	}
	delete(m.sessions, key(id))
	return true
}

// persist writes session through when persistence is attached. Failures
// are logged; the in-memory session stays authoritative.
func (m *Manager) persist(session *service.Session, when string) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.Save(session); err != nil {
		fmt.Printf("Warning: Failed to persist session %s %s: %v\n", session.ID, when, err)
	}
}

// LoadPersistedSessions loads every persisted session not yet in memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	ids, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		m.mu.RLock()
		exists := m.sessionExists(id)
		m.mu.RUnlock()
		if exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted session %s: %v\n", id, err)
			continue
		}

		m.mu.Lock()
		if !m.sessionExists(id) {
			m.sessions[key(id)] = session
			loaded++
		}
		m.mu.Unlock()
	}

	if loaded > 0 {
		fmt.Printf("Loaded %d persisted sessions from storage\n", loaded)
	}
	return nil
}

// SaveAllSessions writes every in-memory session to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	failed := 0
	for _, session := range m.List() {
		if err := m.persistence.Save(session); err != nil {
			fmt.Printf("Warning: Failed to save session %s: %v\n", session.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d sessions", failed)
	}
	return nil
}
