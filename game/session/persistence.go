package session

import (
	"fmt"
	"time"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The scene is not
// stored; it is rebuilt from the config and the world snapshot.
type PersistedSessionData struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	World          engine.Snapshot `json:"world"`
}

// restorer rebuilds sessions from persisted data. Both persistence backends
// embed it.
type restorer struct {
	configManager service.ConfigManager
	worlds        service.WorldFactory
}

func (r *restorer) persisted(session *service.Session) (PersistedSessionData, error) {
	configID := session.ConfigID
	if configID == "" {
		var err error
		if configID, err = r.getConfigIDFromName(session.Config.Name); err != nil {
			return PersistedSessionData{}, fmt.Errorf("failed to get config ID: %w", err)
		}
	}
	return PersistedSessionData{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		World:          session.Engine.Snapshot(),
	}, nil
}

func (r *restorer) restore(data PersistedSessionData) (*service.Session, error) {
	worldConfig, err := r.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	eng, graph, err := r.worlds.NewWorld(worldConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	if err := eng.Restore(data.World); err != nil {
		return nil, fmt.Errorf("failed to restore world: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		ConfigID:       data.ConfigName,
		Engine:         eng,
		Scene:          graph,
		Config:         worldConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// getConfigIDFromName returns the config ID (filename without extension) from display name
func (r *restorer) getConfigIDFromName(displayName string) (string, error) {
	configs, err := r.configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}
	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}
	// If not found, assume the displayName is already the config ID
	return displayName, nil
}
