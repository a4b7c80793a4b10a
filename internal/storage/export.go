package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Export writes the current state blob to dir under a timestamped filename
// and returns the written path.
func Export(ctx context.Context, p Provider, dir string) (string, error) {
	data, err := p.Load(ctx)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("no saved state to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	name := fmt.Sprintf("typelearn-backup-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// Import replaces the persisted state blob with the contents of path. The
// in-memory store must be re-initialized afterwards for the import to take
// effect; there is no partial or merge import.
func Import(ctx context.Context, p Provider, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("import file is not valid JSON")
	}
	return p.Save(ctx, data)
}
