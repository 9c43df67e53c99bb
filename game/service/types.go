package service

import (
	"time"

	"github.com/wricardo/golem/game/engine"
)

// SessionInfo provides information about a world session
type SessionInfo struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	WorldState     *engine.WorldState  `json:"world_state"`
	WorldConfig    *engine.WorldConfig `json:"world_config"`
}

// CommandResult contains the result of a single command or touch
type CommandResult struct {
	Success    bool                  `json:"success"`
	Command    engine.Command        `json:"command,omitempty"`
	Touch      *engine.Point         `json:"touch,omitempty"`
	WorldState *engine.WorldState    `json:"world_state"`
	Message    string                `json:"message"`
	Events     []WorldEvent          `json:"events,omitempty"`
	Record     *engine.CommandRecord `json:"record,omitempty"`
}

// BulkCommandResult contains the result of a command sequence
type BulkCommandResult struct {
	CommandsExecuted  int                `json:"commands_executed"`
	RequestedCommands int                `json:"requested_commands"`
	Success           bool               `json:"success"`
	WorldState        *engine.WorldState `json:"world_state"`
	Events            []WorldEvent       `json:"events"`
	StoppedReason     string             `json:"stopped_reason,omitempty"`
	StoppedOnCommand  int                `json:"stopped_on_command,omitempty"` // 1-based
	Truncated         bool               `json:"truncated,omitempty"`
	Limit             int                `json:"limit,omitempty"`

	StartPos    engine.GridPos `json:"start_pos"`
	EndPos      engine.GridPos `json:"end_pos"`
	StartMapSet string         `json:"start_map_set"`
	EndMapSet   string         `json:"end_map_set"`
	GoldDelta   int            `json:"gold_delta"`

	Steps []StepInfo `json:"steps,omitempty"`
}

// StepInfo is a compact record for each executed command in a bulk call
type StepInfo struct {
	Idx     int            `json:"idx"`
	Command engine.Command `json:"command"`
	From    engine.GridPos `json:"from"`
	To      engine.GridPos `json:"to"`
	MapSet  string         `json:"map_set"`
	Gold    int            `json:"gold"`
	Changed bool           `json:"changed"`
	Switch  string         `json:"switch,omitempty"`
}

// TickResponse reports a run of frame ticks
type TickResponse struct {
	Requested   int                `json:"requested"`
	Executed    int                `json:"executed"`
	Transitions []TransitionInfo   `json:"transitions,omitempty"`
	WorldState  *engine.WorldState `json:"world_state"`
}

// TransitionInfo describes one map set switch attempted during a tick
type TransitionInfo struct {
	Tick     int    `json:"tick"`
	From     string `json:"from"`
	To       string `json:"to"`
	Switched bool   `json:"switched"`
	Error    string `json:"error,omitempty"`
}

// WorldEvent represents something that happened while handling input
type WorldEvent struct {
	Type      string         `json:"type"` // "move", "blocked", "gold", "map_switch", "map_error", "reset", "idle"
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Position  engine.GridPos `json:"position"`
}

// HistoryOptions configures command history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Commands      []engine.CommandRecord `json:"commands"`
	TotalCommands int                    `json:"total_commands"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
	TotalPages    int                    `json:"total_pages"`
	HasNext       bool                   `json:"has_next"`
	HasPrevious   bool                   `json:"has_previous"`
}

// ConfigInfo provides information about a world configuration
type ConfigInfo struct {
	Filename    string   `json:"filename"`
	ConfigID    string   `json:"config_id"` // The identifier to use for session creation
	Name        string   `json:"name"`      // Display name
	Description string   `json:"description"`
	StartMapSet string   `json:"start_map_set"`
	MapSets     []string `json:"map_sets"`
}
