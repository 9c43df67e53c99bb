package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/wricardo/golem/game/service"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresPersistence implements SessionPersistence on a PostgreSQL table.
// Sessions are stored as one row each with the world snapshot in JSONB.
type PostgresPersistence struct {
	restorer
	db *sql.DB
}

// NewPostgresPersistence connects to the database and creates the sessions
// table when missing
func NewPostgresPersistence(connectionString string, configManager service.ConfigManager, worlds service.WorldFactory) (*PostgresPersistence, error) {
	if connectionString == "" {
		return nil, errors.New("postgres persistence: connection string is required")
	}

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &PostgresPersistence{
		restorer: restorer{configManager: configManager, worlds: worlds},
		db:       db,
	}
	if err := p.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

func (p *PostgresPersistence) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS golem_sessions (
		id TEXT PRIMARY KEY,
		config_id TEXT NOT NULL,
		map_set TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL,
		last_accessed_at TIMESTAMP WITH TIME ZONE NOT NULL,
		world JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	_, err := p.db.Exec(schema)
	return err
}

// Save upserts a session row
func (p *PostgresPersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data, err := p.persisted(session)
	if err != nil {
		return err
	}
	worldJSON, err := json.Marshal(data.World)
	if err != nil {
		return fmt.Errorf("failed to marshal world snapshot: %w", err)
	}

	query := `
	INSERT INTO golem_sessions (id, config_id, map_set, created_at, last_accessed_at, world)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET
		config_id = $2, map_set = $3, last_accessed_at = $5, world = $6,
		updated_at = NOW()
	`
	_, err = p.db.Exec(query,
		data.ID, data.ConfigName, data.World.MapSet,
		data.CreatedAt, data.LastAccessedAt, string(worldJSON))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load reads a session row and rebuilds its world
func (p *PostgresPersistence) Load(id string) (*service.Session, error) {
	query := `SELECT id, config_id, created_at, last_accessed_at, world FROM golem_sessions WHERE id = $1`

	var data PersistedSessionData
	var worldJSON string
	err := p.db.QueryRow(query, id).Scan(
		&data.ID, &data.ConfigName, &data.CreatedAt, &data.LastAccessedAt, &worldJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal([]byte(worldJSON), &data.World); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world snapshot: %w", err)
	}
	return p.restore(data)
}

// Delete removes a session row
func (p *PostgresPersistence) Delete(id string) error {
	res, err := p.db.Exec(`DELETE FROM golem_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all stored session IDs
func (p *PostgresPersistence) ListAll() ([]string, error) {
	rows, err := p.db.Query(`SELECT id FROM golem_sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists reports whether a session row exists
func (p *PostgresPersistence) Exists(id string) bool {
	var exists bool
	err := p.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM golem_sessions WHERE id = $1)`, id).Scan(&exists)
	return err == nil && exists
}

// Close closes the database connection
func (p *PostgresPersistence) Close() error {
	log.Println("Closing database connection...")
	return p.db.Close()
}
