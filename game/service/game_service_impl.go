package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
)

// ErrConfigUnavailable is returned when a session names a config that cannot be loaded
var ErrConfigUnavailable = errors.New("configuration unavailable")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := sess.ConfigID
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		WorldState:     sess.Engine.State(),
		WorldConfig:    sess.Config,
	}
}

// CreateSession creates a new world session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.WorldConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("%w: config '%s' (available configs: %v): %v", ErrConfigUnavailable, configName, configIDs, err)
			}
			return nil, fmt.Errorf("%w: config '%s': %v", ErrConfigUnavailable, configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.sessionInfo(sess), nil
}

// GetSession retrieves session information. It takes the write lock
// because reading a session refreshes its last-accessed time.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// mutate runs fn on a session under the write lock and persists the result
func (s *gameServiceImpl) mutate(sessionID, what string, fn func(sess *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := fn(sess); err != nil {
		return err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sessionID, what, err)
	}
	return nil
}

// Touch dispatches a screen point to the control panel
func (s *gameServiceImpl) Touch(ctx context.Context, sessionID string, x, y float64) (*CommandResult, error) {
	var result *CommandResult
	err := s.mutate(sessionID, "touch", func(sess *Session) error {
		p := engine.Point{X: x, Y: y}
		cmd, hit := sess.Engine.Dispatch(p)
		before := sess.Engine.Player()
		beforeTotal := sess.Engine.State().TotalCommands

		sess.Engine.OnTouchBegin(p)

		if !hit {
			tick := sess.Engine.Tick()
			result = &CommandResult{
				Touch:      &p,
				WorldState: sess.Engine.State(),
				Message:    fmt.Sprintf("No control at (%.0f,%.0f)", x, y),
				Events:     tickEvents(tick, sess.Engine.Player()),
			}
			return nil
		}

		state := sess.Engine.State()
		changed := false
		var record *engine.CommandRecord
		if state.TotalCommands > beforeTotal && state.LastCommand != nil {
			record = state.LastCommand
			changed = record.Changed
		}
		result = s.finishCommand(sess, cmd, before, changed)
		result.Touch = &p
		result.Record = record
		return nil
	})
	return result, err
}

// Command executes a single named command
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, command string, reset bool) (*CommandResult, error) {
	cmd, err := ParseCommand(command)
	if err != nil {
		return nil, err
	}

	var result *CommandResult
	err = s.mutate(sessionID, "command", func(sess *Session) error {
		var events []WorldEvent
		if reset {
			if err := sess.Engine.Reset(); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			events = append(events, resetEvent(sess.Engine.Player()))
		}

		before := sess.Engine.Player()
		changed, err := sess.Engine.Execute(cmd)
		if err != nil {
			return err
		}
		result = s.finishCommand(sess, cmd, before, changed)
		result.Events = append(events, result.Events...)
		result.Record = result.WorldState.LastCommand
		return nil
	})
	return result, err
}

// finishCommand runs the frame tick that follows every input and builds the result
func (s *gameServiceImpl) finishCommand(sess *Session, cmd engine.Command, before engine.PlayerState, changed bool) *CommandResult {
	after := sess.Engine.Player()
	events := commandEvents(cmd, before, after, changed)

	tick := sess.Engine.Tick()
	logTick(sess.ID, tick)
	events = append(events, tickEvents(tick, sess.Engine.Player())...)

	state := sess.Engine.State()
	message := state.Status
	switch {
	case cmd == engine.CmdControlA || cmd == engine.CmdControlMenu:
		message = fmt.Sprintf("%s has no effect yet", cmd)
	case !changed:
		message = fmt.Sprintf("%s blocked at the map edge", cmd)
	}

	return &CommandResult{
		Success:    changed,
		Command:    cmd,
		WorldState: state,
		Message:    message,
		Events:     events,
	}
}

// BulkCommand executes commands in sequence, stopping at the first blocked move
func (s *gameServiceImpl) BulkCommand(ctx context.Context, sessionID string, commands []string, reset bool) (*BulkCommandResult, error) {
	var result *BulkCommandResult
	err := s.mutate(sessionID, "bulk commands", func(sess *Session) error {
		result = &BulkCommandResult{
			RequestedCommands: len(commands),
			Events:            make([]WorldEvent, 0),
			Success:           true,
		}

		if reset {
			if err := sess.Engine.Reset(); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			result.Events = append(result.Events, resetEvent(sess.Engine.Player()))
		}

		start := sess.Engine.Player()
		result.StartPos = engine.GridPos{Row: start.Row, Col: start.Col}
		result.StartMapSet = sess.Engine.MapSets().Name()

		if len(commands) > engine.MaxBulkCommands {
			result.Truncated = true
			result.Limit = engine.MaxBulkCommands
			commands = commands[:engine.MaxBulkCommands]
		}

		for i, name := range commands {
			cmd, err := ParseCommand(name)
			if err != nil {
				result.Success = false
				result.StoppedReason = fmt.Sprintf("command %d: %v", i+1, err)
				result.StoppedOnCommand = i + 1
				break
			}

			before := sess.Engine.Player()
			changed, _ := sess.Engine.Execute(cmd)
			after := sess.Engine.Player()
			result.Events = append(result.Events, commandEvents(cmd, before, after, changed)...)

			tick := sess.Engine.Tick()
			logTick(sess.ID, tick)
			result.Events = append(result.Events, tickEvents(tick, sess.Engine.Player())...)

			end := sess.Engine.Player()
			step := StepInfo{
				Idx:     i + 1,
				Command: cmd,
				From:    engine.GridPos{Row: before.Row, Col: before.Col},
				To:      engine.GridPos{Row: end.Row, Col: end.Col},
				MapSet:  sess.Engine.MapSets().Name(),
				Gold:    end.Stats.Gold,
				Changed: changed,
			}
			if tick.Switched {
				step.Switch = tick.To
			}
			result.Steps = append(result.Steps, step)

			if !changed && isMove(cmd) {
				result.Success = false
				result.StoppedReason = fmt.Sprintf("command %d blocked: %s", i+1, cmd)
				result.StoppedOnCommand = i + 1
				break
			}
			result.CommandsExecuted++
		}

		end := sess.Engine.Player()
		result.WorldState = sess.Engine.State()
		result.EndPos = engine.GridPos{Row: end.Row, Col: end.Col}
		result.EndMapSet = result.WorldState.MapSet
		result.GoldDelta = end.Stats.Gold - start.Stats.Gold
		return nil
	})
	return result, err
}

// Tick advances a session by count frame ticks
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID string, count int) (*TickResponse, error) {
	if count <= 0 {
		count = 1
	}
	requested := count
	if count > engine.MaxTicksPerCall {
		count = engine.MaxTicksPerCall
	}

	var resp *TickResponse
	err := s.mutate(sessionID, "tick", func(sess *Session) error {
		resp = &TickResponse{Requested: requested}
		for i := 0; i < count; i++ {
			if ctx.Err() != nil {
				break
			}
			res := sess.Engine.Tick()
			resp.Executed++
			logTick(sess.ID, res)
			if res.Switched || res.Err != nil {
				resp.Transitions = append(resp.Transitions, transitionInfo(sess.Engine.State().Ticks, res))
			}
		}
		resp.WorldState = sess.Engine.State()
		return nil
	})
	return resp, err
}

// TickAll delivers one frame tick to every session and returns how many
// switched map sets
func (s *gameServiceImpl) TickAll(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	switched := 0
	for _, sess := range s.sessions.List() {
		if ctx.Err() != nil {
			break
		}
		res := sess.Engine.Tick()
		logTick(sess.ID, res)
		if !res.Switched {
			continue
		}
		switched++
		if err := s.sessions.Save(sess.ID); err != nil {
			fmt.Printf("Warning: Failed to persist session %s after tick: %v\n", sess.ID, err)
		}
	}
	return switched
}

// LoadMapSet switches a session to another map set
func (s *gameServiceImpl) LoadMapSet(ctx context.Context, sessionID, mapSet string) (*engine.WorldState, error) {
	var state *engine.WorldState
	err := s.mutate(sessionID, "map set load", func(sess *Session) error {
		if err := sess.Engine.LoadMapSet(mapSet); err != nil {
			return fmt.Errorf("load map set %s: %w", mapSet, err)
		}
		state = sess.Engine.State()
		return nil
	})
	return state, err
}

// Reset resets a session to its starting state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.WorldState, error) {
	var state *engine.WorldState
	err := s.mutate(sessionID, "reset", func(sess *Session) error {
		if err := sess.Engine.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		state = sess.Engine.State()
		return nil
	})
	return state, err
}

// GetWorldState retrieves the current world state
func (s *gameServiceImpl) GetWorldState(ctx context.Context, sessionID string) (*engine.WorldState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.State(), nil
}

// GetScene returns the session's scene nodes in draw order
func (s *gameServiceImpl) GetScene(ctx context.Context, sessionID string) ([]scene.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Scene.Snapshot(), nil
}

// GetCommandHistory returns paginated command history
func (s *gameServiceImpl) GetCommandHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var commands []engine.CommandRecord
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			commands = append(commands, history[i])
		}
	} else if start < total {
		commands = history[start:end]
	}
	if commands == nil {
		commands = []engine.CommandRecord{}
	}

	return &HistoryResponse{
		Commands:      commands,
		TotalCommands: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListConfigs returns available world configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific world configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.WorldConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a world configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.WorldConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isMove(cmd engine.Command) bool {
	switch cmd {
	case engine.CmdDpadUp, engine.CmdDpadDown, engine.CmdDpadLeft, engine.CmdDpadRight:
		return true
	}
	return false
}

func logTick(sessionID string, res engine.TickResult) {
	if res.Err != nil {
		log.Printf("[TRANSITION] session %s: %s -> %s failed: %v", sessionID, res.From, res.To, res.Err)
	}
}

func transitionInfo(tick int, res engine.TickResult) TransitionInfo {
	info := TransitionInfo{Tick: tick, From: res.From, To: res.To, Switched: res.Switched}
	if res.Err != nil {
		info.Error = res.Err.Error()
	}
	return info
}

func commandEvents(cmd engine.Command, before, after engine.PlayerState, changed bool) []WorldEvent {
	now := time.Now()
	pos := engine.GridPos{Row: after.Row, Col: after.Col}
	switch {
	case isMove(cmd) && changed:
		return []WorldEvent{{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s to %d,%d", cmd, after.Row, after.Col),
			Timestamp: now,
			Position:  pos,
		}}
	case isMove(cmd):
		return []WorldEvent{{
			Type:      "blocked",
			Message:   fmt.Sprintf("%s blocked at %d,%d", cmd, after.Row, after.Col),
			Timestamp: now,
			Position:  pos,
		}}
	case cmd == engine.CmdControlB || cmd == engine.CmdControlC:
		return []WorldEvent{{
			Type:      "gold",
			Message:   fmt.Sprintf("Gold %d -> %d", before.Stats.Gold, after.Stats.Gold),
			Timestamp: now,
			Position:  pos,
		}}
	default:
		return []WorldEvent{{
			Type:      "idle",
			Message:   fmt.Sprintf("%s has no effect yet", cmd),
			Timestamp: now,
			Position:  pos,
		}}
	}
}

func tickEvents(res engine.TickResult, player engine.PlayerState) []WorldEvent {
	pos := engine.GridPos{Row: player.Row, Col: player.Col}
	switch {
	case res.Err != nil:
		return []WorldEvent{{
			Type:      "map_error",
			Message:   fmt.Sprintf("Switch %s -> %s failed: %v", res.From, res.To, res.Err),
			Timestamp: time.Now(),
			Position:  pos,
		}}
	case res.Switched:
		return []WorldEvent{{
			Type:      "map_switch",
			Message:   fmt.Sprintf("Entered %s from %s", res.To, res.From),
			Timestamp: time.Now(),
			Position:  pos,
		}}
	}
	return nil
}

func resetEvent(player engine.PlayerState) WorldEvent {
	return WorldEvent{
		Type:      "reset",
		Message:   "World reset to initial state",
		Timestamp: time.Now(),
		Position:  engine.GridPos{Row: player.Row, Col: player.Col},
	}
}
