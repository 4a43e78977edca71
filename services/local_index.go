package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalIndexEntry is one row of a user's sidecar index, describing a file
// that lives on their disk (a personal file or a downloaded copy).
type LocalIndexEntry struct {
	FileID         string `yaml:"fileId"`
	FileName       string `yaml:"fileName"`
	StudyGroupName string `yaml:"studyGroupName"`
	OriginalFileID string `yaml:"originalFileId,omitempty"`
	DownloadedAt   string `yaml:"downloadedAt,omitempty"`
}

// LocalIndex maintains a per-user YAML file mapping local paths to file
// metadata. Writes are best-effort; callers log failures and move on.
type LocalIndex struct {
	BaseDir string
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

func (ix *LocalIndex) indexPath(userID string) string {
	return filepath.Join(ExpandHome(ix.BaseDir), userID, "files.yaml")
}

// Load reads a user's index. A missing file is an empty index.
func (ix *LocalIndex) Load(userID string) (map[string]LocalIndexEntry, error) {
	data, err := os.ReadFile(ix.indexPath(userID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]LocalIndexEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read local index: %w", err)
	}

	entries := map[string]LocalIndexEntry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse local index: %w", err)
	}
	return entries, nil
}

// Record upserts the entry for path in the user's index.
func (ix *LocalIndex) Record(userID, path string, entry LocalIndexEntry) error {
	entries, err := ix.Load(userID)
	if err != nil {
		return err
	}
	entries[ExpandHome(path)] = entry
	return ix.write(userID, entries)
}

// Remove drops the entry for path, if present.
func (ix *LocalIndex) Remove(userID, path string) error {
	entries, err := ix.Load(userID)
	if err != nil {
		return err
	}
	delete(entries, ExpandHome(path))
	return ix.write(userID, entries)
}

func (ix *LocalIndex) write(userID string, entries map[string]LocalIndexEntry) error {
	target := ix.indexPath(userID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal local index: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write local index: %w", err)
	}
	return nil
}
