package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/golem/game/service"
)

const sessionFileExt = ".json"

// FilePersistence stores each session as <dir>/<id>.json. Writes go through
// a temporary file and a rename, so a reader never sees a partial session.
type FilePersistence struct {
	restorer
	dir string
}

// NewFilePersistence creates dir when missing
func NewFilePersistence(dir string, configManager service.ConfigManager, worlds service.WorldFactory) (*FilePersistence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		restorer: restorer{configManager: configManager, worlds: worlds},
		dir:      dir,
	}, nil
}

func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	path, err := fp.path(session.ID)
	if err != nil {
		return err
	}

	data, err := fp.persisted(session)
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	tmp, err := os.CreateTemp(fp.dir, "."+session.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	path, err := fp.path(id)
	if err != nil {
		return nil, err
	}

	encoded, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return fp.restore(data)
}

func (fp *FilePersistence) Delete(id string) error {
	path, err := fp.path(id)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns the IDs of every stored session. Temporary files from
// interrupted saves and anything not named like a session are skipped.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		id, ok := strings.CutSuffix(entry.Name(), sessionFileExt)
		if entry.IsDir() || !ok || !ValidID(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (fp *FilePersistence) Exists(id string) bool {
	path, err := fp.path(id)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// path maps a session ID to its file. IDs are validated first so they can
// never name a file outside dir.
func (fp *FilePersistence) path(id string) (string, error) {
	if !ValidID(id) {
		return "", ErrInvalidSessionID
	}
	return filepath.Join(fp.dir, id+sessionFileExt), nil
}
