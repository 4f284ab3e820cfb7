package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	// ErrDocumentNotFound is returned when a named document does not
	// exist in the manager's directory.
	ErrDocumentNotFound = errors.New("configuration document not found")
)

// Manager handles configuration document loading and caching by name.
type Manager struct {
	configDir string
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a manager over configDir.
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	return &Manager{
		configDir: configDir,
		documents: make(map[string]*Document),
	}, nil
}

// Load returns the document called name, reading and caching it on
// first use. The ".yaml" extension is implied.
func (m *Manager) Load(name string) (*Document, error) {
	m.mu.RLock()
	if doc, exists := m.documents[name]; exists {
		m.mu.RUnlock()
		return doc, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, exists := m.documents[name]; exists {
		return doc, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".yaml") && !strings.HasSuffix(filename, ".yml") {
		filename += ".yaml"
	}

	path := filepath.Join(m.configDir, filename)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", name, err)
	}
	defer f.Close()

	doc, err := LoadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", name, err)
	}

	m.documents[name] = doc
	return doc, nil
}

// List returns the names of every loadable document in the directory.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	return names, nil
}

// Refresh drops the cache so subsequent Loads re-read from disk.
func (m *Manager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = make(map[string]*Document)
}
