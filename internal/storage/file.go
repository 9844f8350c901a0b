package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/frzip09/absolute-time/internal/settings"
)

// FileBackend persists the settings record as a yaml file. A missing file
// is not an error: absent keys imply defaults, and the file appears on the
// first save.
type FileBackend struct {
	path     string
	watchers watcherSet
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Load(_ context.Context) (settings.Patch, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings.Patch{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings yaml: %w", err)
	}
	return settings.Patch(raw), nil
}

func (f *FileBackend) Save(_ context.Context, s settings.Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// Write-then-rename so a crash mid-save never leaves a torn file.
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	f.watchers.broadcast(settings.Record(s))
	return nil
}

func (f *FileBackend) Watch(ctx context.Context) (<-chan settings.Patch, error) {
	return f.watchers.subscribe(ctx), nil
}

func (f *FileBackend) Close() error {
	f.watchers.closeAll()
	return nil
}
