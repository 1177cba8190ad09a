package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// FilterStore persists the last-applied filter descriptor per user, so
// the filter picker reopens with the previous selection. The file holds
// the JSON wire form of FilterOptions.
type FilterStore interface {
	// LoadFilter returns the saved descriptor, or nil when none was saved.
	LoadFilter(userID string) (*models.FilterOptions, error)
	SaveFilter(userID string, filter models.FilterOptions) error
	ClearFilter(userID string) error
}

type fileFilterStore struct {
	basePath string
}

// NewFilterStore creates a FilterStore rooted at basePath.
func NewFilterStore(basePath string) FilterStore {
	return &fileFilterStore{basePath: basePath}
}

func (s *fileFilterStore) filePath(userID string) string {
	return filepath.Join(s.basePath, "users", userID, "filters.json")
}

func (s *fileFilterStore) LoadFilter(userID string) (*models.FilterOptions, error) {
	if err := validUserID(userID); err != nil {
		return nil, fmt.Errorf("loading filter: %w", err)
	}
	data, err := os.ReadFile(s.filePath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading filter for user %s: %w", userID, err)
	}

	var filter models.FilterOptions
	if err := json.Unmarshal(data, &filter); err != nil {
		return nil, fmt.Errorf("loading filter for user %s: parsing JSON: %w", userID, err)
	}
	if filter.Tags == nil {
		filter.Tags = []string{}
	}
	return &filter, nil
}

func (s *fileFilterStore) SaveFilter(userID string, filter models.FilterOptions) error {
	if err := validUserID(userID); err != nil {
		return fmt.Errorf("saving filter: %w", err)
	}
	dir := filepath.Dir(s.filePath(userID))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("saving filter for user %s: creating directory: %w", userID, err)
	}

	data, err := json.MarshalIndent(filter, "", "  ")
	if err != nil {
		return fmt.Errorf("saving filter for user %s: marshalling JSON: %w", userID, err)
	}
	if err := os.WriteFile(s.filePath(userID), data, 0o600); err != nil {
		return fmt.Errorf("saving filter for user %s: writing file: %w", userID, err)
	}
	return nil
}

func (s *fileFilterStore) ClearFilter(userID string) error {
	if err := validUserID(userID); err != nil {
		return fmt.Errorf("clearing filter: %w", err)
	}
	if err := os.Remove(s.filePath(userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing filter for user %s: %w", userID, err)
	}
	return nil
}
