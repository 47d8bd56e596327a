package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ironpulse/local-app/internal/model"
)

// FileExport writes an entry log to filename as indented JSON.
func FileExport(entries model.EntryList, filename string) error {
	if entries == nil {
		entries = model.EntryList{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// FileImport reads an entry log written by FileExport. Every entry must validate.
func FileImport(filename string) (model.EntryList, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var entries model.EntryList
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return entries, nil
}
