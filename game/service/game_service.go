package service

import (
	"context"
	"time"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
)

// GameService defines all world operations exposed to transports
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Input
	Touch(ctx context.Context, sessionID string, x, y float64) (*CommandResult, error)
	Command(ctx context.Context, sessionID, command string, reset bool) (*CommandResult, error)
	BulkCommand(ctx context.Context, sessionID string, commands []string, reset bool) (*BulkCommandResult, error)

	// World
	Tick(ctx context.Context, sessionID string, count int) (*TickResponse, error)
	TickAll(ctx context.Context) int
	LoadMapSet(ctx context.Context, sessionID, mapSet string) (*engine.WorldState, error)
	Reset(ctx context.Context, sessionID string) (*engine.WorldState, error)

	// World State
	GetWorldState(ctx context.Context, sessionID string) (*engine.WorldState, error)
	GetScene(ctx context.Context, sessionID string) ([]scene.Node, error)
	GetCommandHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.WorldConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, configID string, config *engine.WorldConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles world configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.WorldConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.WorldConfig
	SaveConfig(name string, config *engine.WorldConfig) error
}

// Session represents one running world. The engine draws into Scene.
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.WorldEngine
	Scene          *scene.Graph
	Config         *engine.WorldConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
