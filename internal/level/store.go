package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Store persists the full level collection.
type Store interface {
	LoadLevels() ([]Level, error)
	SaveLevels(levels []Level) error
}

// LoadOrSamples loads levels from s and falls back to the built-in samples
// when the store is nil, empty or unreadable. The error is still returned so
// callers can report it.
func LoadOrSamples(s Store) ([]Level, error) {
	if s == nil {
		return Samples(), nil
	}
	levels, err := s.LoadLevels()
	if err != nil {
		return Samples(), err
	}
	if len(levels) == 0 {
		return Samples(), nil
	}
	return levels, nil
}

// SaveLevel upserts a single level into s by id.
func SaveLevel(s Store, l Level) error {
	levels, err := LoadOrSamples(s)
	if err != nil {
		return err
	}
	return s.SaveLevels(Upsert(levels, l))
}

// DirStore keeps one level per file under Root. Both JSON and YAML files are
// read; levels are written back as YAML named after their id.
type DirStore struct {
	Root   string
	Logger *log.Logger
}

// NewDirStore creates a directory-backed level store.
func NewDirStore(root string, logger *log.Logger) *DirStore {
	return &DirStore{Root: root, Logger: logger}
}

// LoadLevels recursively scans Root and loads every level file.
// Invalid files are skipped. Returns levels sorted by id.
func (d *DirStore) LoadLevels() ([]Level, error) {
	if _, err := os.Stat(d.Root); os.IsNotExist(err) {
		return nil, nil
	}

	byID := make(map[string]Level)
	err := filepath.WalkDir(d.Root, func(path string, e os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() || !IsLevelFile(path) {
			return nil
		}

		levels, err := d.LoadFile(path)
		if err != nil {
			if d.Logger != nil {
				d.Logger.Warn("skipping level file", "path", path, "error", err)
			}
			return nil
		}
		for _, l := range levels {
			byID[l.ID] = l
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", d.Root, err)
	}

	levels := make([]Level, 0, len(byID))
	for _, l := range byID {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads every level contained in a single file.
func (d *DirStore) LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading file %s: %w", path, err)
	}
	levels, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("level: parsing file %s: %w", path, err)
	}
	return levels, nil
}

// SaveLevels writes each level to Root/<id>.yaml.
func (d *DirStore) SaveLevels(levels []Level) error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("level: cannot create directory %s: %w", d.Root, err)
	}
	for _, l := range levels {
		data, err := EncodeYAML(l)
		if err != nil {
			return err
		}
		path := filepath.Join(d.Root, fileName(l.ID)+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("level: cannot write %s: %w", path, err)
		}
	}
	return nil
}

// fileName makes a level id safe to use as a file name.
func fileName(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}

// MemStore is an in-memory Store, used when no database or level directory
// is available and in tests.
type MemStore struct {
	mu     sync.Mutex
	levels []Level
}

// NewMemStore creates a store seeded with the given levels.
func NewMemStore(levels ...Level) *MemStore {
	m := &MemStore{}
	m.SaveLevels(levels) //nolint:errcheck
	return m
}

// LoadLevels returns copies of the stored levels.
func (m *MemStore) LoadLevels() ([]Level, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Level, len(m.levels))
	for i, l := range m.levels {
		out[i] = l.Clone()
	}
	return out, nil
}

// SaveLevels replaces the stored levels.
func (m *MemStore) SaveLevels(levels []Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = make([]Level, len(levels))
	for i, l := range levels {
		m.levels[i] = l.Clone()
	}
	return nil
}
