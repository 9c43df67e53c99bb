package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/wricardo/golem/game/engine"
	"github.com/wricardo/golem/game/scene"
	"github.com/wricardo/golem/game/service"
	"github.com/wricardo/golem/game/session"
)

func gridText(rows, cols int, id int) string {
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "%d", id)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func testWorlds() *service.Worlds {
	maps := fstest.MapFS{
		"world.base.txt":    {Data: []byte(gridText(7, 7, 1))},
		"world.texture.txt": {Data: []byte(gridText(7, 7, 0))},
		"other.base.txt":    {Data: []byte(gridText(4, 5, 2))},
		"other.texture.txt": {Data: []byte(gridText(4, 5, 0))},
	}
	return service.NewWorlds(maps, scene.FixedSizer{Size: engine.Size{W: 32, H: 32}})
}

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	worlds   service.WorldFactory
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		worlds:   testWorlds(),
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, configID string, config *engine.WorldConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}
	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, graph, err := m.worlds.NewWorld(config)
	if err != nil {
		return nil, err
	}
	sess := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Engine:         eng,
		Scene:          graph,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	sess, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return sess, nil
}

func (m *MockSessionManager) GetOrCreate(id, configID string, config *engine.WorldConfig) (*service.Session, error) {
	if sess, exists := m.sessions[id]; exists {
		return sess, nil
	}
	return m.Create(id, configID, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if sess, exists := m.sessions[id]; exists {
		sess.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.WorldConfig
}

func NewMockConfigManager() *MockConfigManager {
	corner := engine.DefaultWorldConfig()
	corner.Name = "corner"
	corner.Player.Row, corner.Player.Col = 1, 1

	return &MockConfigManager{
		configs: map[string]*engine.WorldConfig{
			"golem":  engine.DefaultWorldConfig(),
			"corner": corner,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.WorldConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("config not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			StartMapSet: config.StartMapSet,
			MapSets:     config.MapSets,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.WorldConfig {
	return m.configs["golem"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.WorldConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService(t *testing.T) (service.GameService, *MockSessionManager) {
	t.Helper()
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockConfigManager()), sessions
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name       string
		configName string
		wantConfig string
		wantErr    bool
	}{
		{"create with default config", "", "golem", false},
		{"create with specific config", "corner", "corner", false},
		{"create with invalid config", "nonexistent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.configName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrConfigUnavailable) {
					t.Errorf("Expected ErrConfigUnavailable, got %v", err)
				}
				return
			}
			if info.ConfigName != tt.wantConfig {
				t.Errorf("Expected config %s, got %s", tt.wantConfig, info.ConfigName)
			}
			if info.WorldState == nil || info.WorldState.MapSet != "world" {
				t.Errorf("Expected a world session on the world map set, got %+v", info.WorldState)
			}
		})
	}
}

func TestGameService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.WorldState.Status != "HP:100 - MP:100 - LVL:1 - Gold:0 @ 5,5" {
		t.Errorf("Unexpected status %q", got.WorldState.Status)
	}

	list, _ := svc.ListSessions(ctx)
	if len(list) != 1 {
		t.Errorf("Expected 1 session, got %d", len(list))
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Expected error for deleted session")
	}
}

// Reads refresh the last-accessed time, so they must not overlap other
// readers of the session. Run with -race.
func TestGameService_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(session.NewManager(testWorlds()), NewMockConfigManager())

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				var err error
				switch (g + i) % 3 {
				case 0:
					_, err = svc.GetSession(ctx, info.ID)
				case 1:
					_, err = svc.GetWorldState(ctx, info.ID)
				default:
					_, err = svc.ListSessions(ctx)
				}
				if err != nil {
					errs <- err
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent read failed: %v", err)
	}

	got, err := svc.GetSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.LastAccessedAt.Before(info.LastAccessedAt) {
		t.Errorf("Expected last access to move forward, got %v before %v", got.LastAccessedAt, info.LastAccessedAt)
	}
}

func TestGameService_Command(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	tests := []struct {
		name        string
		sessionID   string
		command     string
		wantErr     bool
		wantSuccess bool
		wantPos     engine.GridPos
		wantGold    int
	}{
		{"move up", info.ID, "dpad_up", false, true, engine.GridPos{Row: 6, Col: 5}, 0},
		{"blocked at top edge", info.ID, "up", false, false, engine.GridPos{Row: 6, Col: 5}, 0},
		{"alias with spaces", info.ID, "  LEFT ", false, true, engine.GridPos{Row: 6, Col: 4}, 0},
		{"add gold", info.ID, "b", false, true, engine.GridPos{Row: 6, Col: 4}, 10},
		{"spend gold", info.ID, "control_c", false, true, engine.GridPos{Row: 6, Col: 4}, 0},
		{"reserved command", info.ID, "control_a", false, false, engine.GridPos{Row: 6, Col: 4}, 0},
		{"unknown command", info.ID, "fly", true, false, engine.GridPos{}, 0},
		{"invalid session", "nonexistent", "dpad_up", true, false, engine.GridPos{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Command(ctx, tt.sessionID, tt.command, false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if result.Success != tt.wantSuccess {
				t.Errorf("Expected success=%v, got %v (%s)", tt.wantSuccess, result.Success, result.Message)
			}
			p := result.WorldState.Player
			if (engine.GridPos{Row: p.Row, Col: p.Col}) != tt.wantPos {
				t.Errorf("Expected position %+v, got %d,%d", tt.wantPos, p.Row, p.Col)
			}
			if p.Stats.Gold != tt.wantGold {
				t.Errorf("Expected gold %d, got %d", tt.wantGold, p.Stats.Gold)
			}
			if result.Record == nil || result.Record.Command != result.Command {
				t.Errorf("Expected a history record for %s", result.Command)
			}
		})
	}

	if _, err := svc.Command(ctx, info.ID, "fly", false); !errors.Is(err, engine.ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
	if sessions.saves == 0 {
		t.Error("Expected commands to persist the session")
	}
}

func TestGameService_CommandWithReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	svc.Command(ctx, info.ID, "dpad_down", false)
	svc.Command(ctx, info.ID, "control_b", false)

	result, err := svc.Command(ctx, info.ID, "dpad_right", true)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	p := result.WorldState.Player
	if p.Row != 5 || p.Col != 6 || p.Stats.Gold != 0 {
		t.Errorf("Expected reset then right to give 5,6 with no gold, got %d,%d gold %d", p.Row, p.Col, p.Stats.Gold)
	}
	if len(result.Events) == 0 || result.Events[0].Type != "reset" {
		t.Errorf("Expected a reset event first, got %+v", result.Events)
	}
	// history survives reset
	if result.WorldState.TotalCommands != 3 {
		t.Errorf("Expected 3 total commands, got %d", result.WorldState.TotalCommands)
	}
}

func TestGameService_Touch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	tests := []struct {
		name    string
		x, y    float64
		wantCmd engine.Command
		wantRow int
		wantCol int
		wantHit bool
	}{
		{"up arrow", 80, 210, engine.CmdDpadUp, 6, 5, true},
		{"left arrow", 30, 170, engine.CmdDpadLeft, 6, 4, true},
		{"down arrow", 90, 130, engine.CmdDpadDown, 5, 4, true},
		{"right arrow", 120, 160, engine.CmdDpadRight, 5, 5, true},
		{"empty space", 0, 0, "", 5, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Touch(ctx, info.ID, tt.x, tt.y)
			if err != nil {
				t.Fatalf("Touch failed: %v", err)
			}
			if result.Command != tt.wantCmd {
				t.Errorf("Expected command %q, got %q", tt.wantCmd, result.Command)
			}
			if (result.Record != nil) != tt.wantHit {
				t.Errorf("Expected record present=%v", tt.wantHit)
			}
			p := result.WorldState.Player
			if p.Row != tt.wantRow || p.Col != tt.wantCol {
				t.Errorf("Expected %d,%d, got %d,%d", tt.wantRow, tt.wantCol, p.Row, p.Col)
			}
			if result.Touch == nil || result.Touch.X != tt.x {
				t.Errorf("Expected touch point to be echoed")
			}
		})
	}

	if _, err := svc.Touch(ctx, "nonexistent", 80, 210); err == nil {
		t.Error("Expected error for invalid session")
	}
}

func TestGameService_BulkCommandSwitchesMapSet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	commands := []string{"down", "down", "down", "down", "left", "left", "left", "left"}
	result, err := svc.BulkCommand(ctx, info.ID, commands, false)
	if err != nil {
		t.Fatalf("BulkCommand failed: %v", err)
	}
	if !result.Success || result.CommandsExecuted != 8 {
		t.Fatalf("Expected 8 executed commands, got %d (%s)", result.CommandsExecuted, result.StoppedReason)
	}
	if result.StartMapSet != "world" || result.EndMapSet != "other" {
		t.Errorf("Expected world -> other, got %s -> %s", result.StartMapSet, result.EndMapSet)
	}
	if last := result.Steps[len(result.Steps)-1]; last.Switch != "other" {
		t.Errorf("Expected the last step to switch to other, got %+v", last)
	}
	if result.EndPos != (engine.GridPos{Row: 1, Col: 1}) {
		t.Errorf("Expected to end on 1,1, got %+v", result.EndPos)
	}
	if result.WorldState.Rows != 4 || result.WorldState.Cols != 5 {
		t.Errorf("Expected the 4x5 map, got %dx%d", result.WorldState.Rows, result.WorldState.Cols)
	}

	switches := 0
	for _, ev := range result.Events {
		if ev.Type == "map_switch" {
			switches++
		}
	}
	if switches != 1 {
		t.Errorf("Expected exactly one map_switch event, got %d", switches)
	}

	// standing on 1,1 of other must not switch again
	tick, err := svc.Tick(ctx, info.ID, 5)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if len(tick.Transitions) != 0 || tick.WorldState.MapSet != "other" {
		t.Errorf("Expected no transitions, got %+v", tick.Transitions)
	}
}

func TestGameService_BulkCommandStops(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	t.Run("blocked move", func(t *testing.T) {
		result, err := svc.BulkCommand(ctx, info.ID, []string{"up", "b", "up", "up"}, true)
		if err != nil {
			t.Fatalf("BulkCommand failed: %v", err)
		}
		if result.Success || result.StoppedOnCommand != 3 || result.CommandsExecuted != 2 {
			t.Errorf("Expected stop on command 3 after 2, got stop=%d executed=%d", result.StoppedOnCommand, result.CommandsExecuted)
		}
		if result.GoldDelta != 10 {
			t.Errorf("Expected gold delta 10, got %d", result.GoldDelta)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		result, err := svc.BulkCommand(ctx, info.ID, []string{"down", "jump"}, true)
		if err != nil {
			t.Fatalf("BulkCommand failed: %v", err)
		}
		if result.Success || result.StoppedOnCommand != 2 || !strings.Contains(result.StoppedReason, "unknown command") {
			t.Errorf("Unexpected stop: %+v", result)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		commands := make([]string, engine.MaxBulkCommands+10)
		for i := range commands {
			commands[i] = "control_b"
		}
		result, err := svc.BulkCommand(ctx, info.ID, commands, true)
		if err != nil {
			t.Fatalf("BulkCommand failed: %v", err)
		}
		if !result.Truncated || result.Limit != engine.MaxBulkCommands || result.CommandsExecuted != engine.MaxBulkCommands {
			t.Errorf("Expected truncation to %d, got %+v", engine.MaxBulkCommands, result.CommandsExecuted)
		}
		if result.RequestedCommands != engine.MaxBulkCommands+10 {
			t.Errorf("Expected requested count to be preserved, got %d", result.RequestedCommands)
		}
	})
}

func TestGameService_Tick(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	resp, err := svc.Tick(ctx, info.ID, 0)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if resp.Executed != 1 {
		t.Errorf("Expected one tick for count 0, got %d", resp.Executed)
	}

	resp, _ = svc.Tick(ctx, info.ID, engine.MaxTicksPerCall+400)
	if resp.Executed != engine.MaxTicksPerCall || resp.Requested != engine.MaxTicksPerCall+400 {
		t.Errorf("Expected %d executed ticks, got %d of %d", engine.MaxTicksPerCall, resp.Executed, resp.Requested)
	}
}

func TestGameService_TickAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	corner, _ := svc.CreateSession(ctx, "corner")
	svc.CreateSession(ctx, "golem")

	if n := svc.TickAll(ctx); n != 1 {
		t.Errorf("Expected one session to switch, got %d", n)
	}
	state, _ := svc.GetWorldState(ctx, corner.ID)
	if state.MapSet != "other" {
		t.Errorf("Expected corner session on other, got %s", state.MapSet)
	}
	if n := svc.TickAll(ctx); n != 0 {
		t.Errorf("Expected no further switches, got %d", n)
	}
}

func TestGameService_LoadMapSetAndReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	state, err := svc.LoadMapSet(ctx, info.ID, "other")
	if err != nil {
		t.Fatalf("LoadMapSet failed: %v", err)
	}
	// player clamped from 5,5 into the 4x5 map
	if state.Player.Row != 3 || state.Player.Col != 4 {
		t.Errorf("Expected player clamped to 3,4, got %d,%d", state.Player.Row, state.Player.Col)
	}

	if _, err := svc.LoadMapSet(ctx, info.ID, "missing"); !errors.Is(err, engine.ErrMissingResource) {
		t.Errorf("Expected ErrMissingResource, got %v", err)
	}
	state, _ = svc.GetWorldState(ctx, info.ID)
	if state.MapSet != "other" || state.LastError == "" {
		t.Errorf("Expected other with a recorded error, got %s %q", state.MapSet, state.LastError)
	}

	state, err = svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.MapSet != "world" || state.Player.Row != 5 || state.Player.Col != 5 {
		t.Errorf("Expected reset to world at 5,5, got %s %d,%d", state.MapSet, state.Player.Row, state.Player.Col)
	}
}

func TestGameService_GetScene(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	nodes, err := svc.GetScene(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetScene failed: %v", err)
	}
	// 7x7 base and texture plus player, status, controls and banner
	if len(nodes) != 7*7*2+4 {
		t.Errorf("Expected %d nodes, got %d", 7*7*2+4, len(nodes))
	}
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Depth < nodes[i-1].Depth {
			t.Fatalf("Nodes not in draw order at %d", i)
		}
	}
}

func TestGameService_GetCommandHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	info, _ := svc.CreateSession(ctx, "")

	for _, cmd := range []string{"down", "down", "b", "left", "c"} {
		if _, err := svc.Command(ctx, info.ID, cmd, false); err != nil {
			t.Fatalf("Command %s failed: %v", cmd, err)
		}
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		wantLen   int
		wantFirst int
		wantNext  bool
		wantPages int
	}{
		{"defaults", service.HistoryOptions{}, 5, 5, false, 1},
		{"desc page 1", service.HistoryOptions{Page: 1, Limit: 2}, 2, 5, true, 3},
		{"desc page 3", service.HistoryOptions{Page: 3, Limit: 2}, 1, 1, false, 3},
		{"asc page 2", service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"}, 2, 3, true, 3},
		{"past the end", service.HistoryOptions{Page: 9, Limit: 2, Order: "asc"}, 0, 0, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetCommandHistory(ctx, info.ID, tt.opts)
			if err != nil {
				t.Fatalf("GetCommandHistory failed: %v", err)
			}
			if len(resp.Commands) != tt.wantLen {
				t.Fatalf("Expected %d commands, got %d", tt.wantLen, len(resp.Commands))
			}
			if tt.wantLen > 0 && resp.Commands[0].Number != tt.wantFirst {
				t.Errorf("Expected first command #%d, got #%d", tt.wantFirst, resp.Commands[0].Number)
			}
			if resp.HasNext != tt.wantNext || resp.TotalPages != tt.wantPages || resp.TotalCommands != 5 {
				t.Errorf("Unexpected pagination: %+v", resp)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.Command
		wantErr bool
	}{
		{"dpad_up", engine.CmdDpadUp, false},
		{"DPAD_DOWN", engine.CmdDpadDown, false},
		{"r", engine.CmdDpadRight, false},
		{"menu", engine.CmdControlMenu, false},
		{"control_menu", engine.CmdControlMenu, false},
		{"", "", true},
		{"jump", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := service.ParseCommand(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCommand(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWorlds_NewWorld(t *testing.T) {
	if _, _, err := testWorlds().NewWorld(nil); err == nil {
		t.Error("Expected error for nil config")
	}

	config := engine.DefaultWorldConfig()
	config.StartMapSet = "other"
	config.MapSets = []string{"other", "world"}
	eng, graph, err := testWorlds().NewWorld(config)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	if !eng.Ready() || eng.MapSets().Name() != "other" {
		t.Errorf("Expected a ready engine on other")
	}
	if graph.Size() != (engine.Size{W: 375, H: 700}) {
		t.Errorf("Expected graph sized from the screen config, got %v", graph.Size())
	}

	empty := service.NewWorlds(fstest.MapFS{}, nil)
	if _, _, err := empty.NewWorld(engine.DefaultWorldConfig()); !errors.Is(err, engine.ErrMissingResource) {
		t.Errorf("Expected ErrMissingResource without maps, got %v", err)
	}
}
