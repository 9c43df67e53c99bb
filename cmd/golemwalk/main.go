// Command golemwalk explores a Golem world through the REST API. It walks
// the player onto trigger cells until every map set of the world has been
// visited, retrying from a reset when a walk gets stuck.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wricardo/golem/game/engine"
)

// ErrIncomplete is returned when some map sets were never reached
var ErrIncomplete = errors.New("world not fully explored")

// Options bound an exploration run
type Options struct {
	MaxSteps    int
	MaxAttempts int
	Delay       time.Duration
	Verbose     bool
}

// Report summarizes an exploration run
type Report struct {
	Attempts int
	Steps    int
	Visited  []string
	Missing  []string
}

// explore drives the client's session until every map set was visited.
// Each attempt starts from a reset.
func explore(ctx context.Context, client *Client, config *engine.WorldConfig, opts Options) (*Report, error) {
	explorer := NewExplorer(config)
	report := &Report{}

	for report.Attempts < opts.MaxAttempts {
		report.Attempts++
		explorer.Reset()

		state, err := client.Reset(ctx)
		if err != nil {
			return report, err
		}
		log.Printf("=== Attempt %d/%d from %s (%d,%d) ===",
			report.Attempts, opts.MaxAttempts, state.MapSet, state.Player.Row, state.Player.Col)

		steps := 0
		for steps < opts.MaxSteps && !explorer.Done() {
			cmds := explorer.NextCommands(state)
			if len(cmds) == 0 {
				log.Printf("⚠️  No trigger leads anywhere from %s", state.MapSet)
				break
			}

			result, err := client.BulkCommand(ctx, cmds)
			if err != nil {
				return report, err
			}
			for _, step := range result.Steps {
				if step.Switch != "" {
					explorer.Visit(step.Switch)
					log.Printf("➡️  %s -> %s at step %d", result.StartMapSet, step.Switch, steps+step.Idx)
				}
			}
			steps += len(result.Steps)
			state = result.WorldState
			explorer.Visit(state.MapSet)

			if opts.Verbose {
				log.Printf("Position: %s (%d,%d), executed %d/%d",
					state.MapSet, state.Player.Row, state.Player.Col, result.CommandsExecuted, result.RequestedCommands)
			}
			if len(result.Steps) == 0 {
				log.Printf("⚠️  Walk stalled: %s", result.StoppedReason)
				break
			}
			if opts.Delay > 0 {
				time.Sleep(opts.Delay)
			}
		}

		report.Steps += steps
		if explorer.Done() {
			break
		}
		log.Printf("Attempt %d: %d steps, still missing %s", report.Attempts, steps, strings.Join(explorer.Unvisited(), ", "))
	}

	for _, name := range config.MapSets {
		if explorer.visited[name] {
			report.Visited = append(report.Visited, name)
		}
	}
	report.Missing = explorer.Unvisited()
	if len(report.Missing) > 0 {
		return report, ErrIncomplete
	}
	return report, nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	serverURL := flag.String("url", "http://localhost:8080", "World server URL")
	configID := flag.String("config", "", "World configuration to explore (default config if empty)")
	continueSession := flag.String("continue", "", "Resume exploring an existing session by ID")
	maxSteps := flag.Int("max-steps", 3000, "Maximum commands per attempt")
	maxAttempts := flag.Int("max-attempts", 10, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delay := flag.Duration("delay", 0, "Delay between command batches")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Connecting to world server at %s", *serverURL)
	client := NewClient(*serverURL)

	sessionFile := ".session"
	savedSessionID := *continueSession
	if savedSessionID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	var config *engine.WorldConfig
	if savedSessionID != "" {
		info, err := client.Resume(ctx, savedSessionID)
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
		} else {
			log.Printf("🔄 Resumed session: %s", info.ID)
			config = info.WorldConfig
		}
	}

	if config == nil {
		info, err := client.CreateSession(ctx, *configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", info.ID)
		config = info.WorldConfig

		if err := os.WriteFile(sessionFile, []byte(info.ID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}
	if config == nil {
		log.Fatalf("Session %s did not report its world configuration", client.SessionID())
	}
	log.Printf("World %s: map sets %s", config.Name, strings.Join(config.MapSets, ", "))

	report, err := explore(ctx, client, config, Options{
		MaxSteps:    *maxSteps,
		MaxAttempts: *maxAttempts,
		Delay:       *delay,
		Verbose:     *verbose,
	})

	fmt.Printf("Session: %s\n", client.SessionID())
	if report != nil {
		fmt.Printf("Attempts: %d, steps: %d\n", report.Attempts, report.Steps)
		fmt.Printf("Visited: %s\n", strings.Join(report.Visited, ", "))
	}
	if err != nil {
		if report != nil && len(report.Missing) > 0 {
			fmt.Printf("❌ Missing: %s\n", strings.Join(report.Missing, ", "))
		}
		log.Printf("Exploration failed: %v", err)
		os.Exit(1)
	}
	fmt.Println("🎉 Every map set visited")
}
