package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/wricardo/golem/api"
	"github.com/wricardo/golem/game/config"
	"github.com/wricardo/golem/game/service"
	"github.com/wricardo/golem/game/session"
)

// newWorldServer serves the sample worlds through the real REST API
func newWorldServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager("../../configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	worlds := service.NewWorlds(os.DirFS("../../maps"), nil)
	svc := service.NewGameService(session.NewManager(worlds), configs)

	srv := httptest.NewServer(api.NewServer(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestExplore_SampleWorld(t *testing.T) {
	srv := newWorldServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL + "/")
	info, err := client.CreateSession(ctx, "golem")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.WorldConfig == nil {
		t.Fatal("Expected session to report its world configuration")
	}

	report, err := explore(ctx, client, info.WorldConfig, Options{MaxSteps: 200, MaxAttempts: 2})
	if err != nil {
		t.Fatalf("Expected full exploration, got %v (%+v)", err, report)
	}
	if !reflect.DeepEqual(report.Visited, []string{"world", "other"}) {
		t.Errorf("Expected both map sets visited, got %v", report.Visited)
	}
	if report.Attempts != 1 {
		t.Errorf("Expected a single attempt, got %d", report.Attempts)
	}
	// (5,5) to the (1,1) trigger is eight steps
	if report.Steps != 8 {
		t.Errorf("Expected 8 steps, got %d", report.Steps)
	}
}

func TestExplore_Incomplete(t *testing.T) {
	srv := newWorldServer(t)
	ctx := context.Background()

	client := NewClient(srv.URL)
	info, err := client.CreateSession(ctx, "golem")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	cfg := *info.WorldConfig
	cfg.MapSets = append(append([]string{}, cfg.MapSets...), "cave")

	report, err := explore(ctx, client, &cfg, Options{MaxSteps: 20, MaxAttempts: 2})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Expected ErrIncomplete, got %v", err)
	}
	if report.Attempts != 2 {
		t.Errorf("Expected both attempts used, got %d", report.Attempts)
	}
	if !reflect.DeepEqual(report.Missing, []string{"cave"}) {
		t.Errorf("Expected cave missing, got %v", report.Missing)
	}
}

func TestClient_Resume(t *testing.T) {
	srv := newWorldServer(t)
	ctx := context.Background()

	first := NewClient(srv.URL)
	created, err := first.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	second := NewClient(srv.URL)
	info, err := second.Resume(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to resume: %v", err)
	}
	if info.ID != created.ID || second.SessionID() != created.ID {
		t.Errorf("Expected session %s, got %s", created.ID, info.ID)
	}

	if _, err := NewClient(srv.URL).Resume(ctx, "nope"); err == nil || !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected session not found error, got %v", err)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateSession(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("Expected status in error, got %v", err)
	}
}
