package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	// IndexFileName is the derived listing of every exercise in the store.
	IndexFileName = "index.json"

	jsonExt    = ".json"
	tempPrefix = ".liftlog-"
)

// Manager centralizes where exercise logs live on disk and how files are named.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ResolveBasePath.
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	} else {
		basePath, err = NormalizePath(basePath)
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the directory storing all exercise files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// ExercisePath resolves the JSON document for slug. The file may not exist yet.
func (m *Manager) ExercisePath(slug string) string {
	return filepath.Join(m.basePath, slug+jsonExt)
}

// IndexPath resolves index.json inside the store.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.basePath, IndexFileName)
}

// EnsureDir creates the store directory if it is missing.
func (m *Manager) EnsureDir() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// ExerciseFiles lists exercise document names (not paths) in lexical order.
// index.json and in-flight temp files are excluded. A missing store yields nil.
func (m *Manager) ExerciseFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(m.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store directory: %w", err)
	}

	var names []string
	for _, entry := range dirEntries {
		if entry.IsDir() || !IsExerciseFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// IsExerciseFile reports whether a file name inside the store is an exercise document.
func IsExerciseFile(name string) bool {
	name = filepath.Base(name)
	if !strings.HasSuffix(name, jsonExt) || name == IndexFileName {
		return false
	}
	return !strings.HasPrefix(name, tempPrefix)
}

// SlugFromFile strips the .json extension from an exercise document name.
func SlugFromFile(name string) string {
	return strings.TrimSuffix(filepath.Base(name), jsonExt)
}

// WriteFile replaces path with data through a temp file and rename so readers
// never observe a partial document.
func (m *Manager) WriteFile(path string, data []byte) error {
	if err := m.EnsureDir(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
