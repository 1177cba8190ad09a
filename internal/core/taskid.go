package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TaskIDGenerator defines the interface for generating unique task IDs.
type TaskIDGenerator interface {
	GenerateTaskID() (string, error)
}

// fileTaskIDGenerator persists a counter in a .tarefa_counter file so IDs
// stay unique across process restarts. The counter is shared by all users
// of a base path; uniqueness per user follows from global uniqueness.
type fileTaskIDGenerator struct {
	basePath string
	prefix   string
	padWidth int
}

// NewTaskIDGenerator creates a TaskIDGenerator storing its counter inside
// basePath. padWidth controls zero-padding of the numeric portion; 0 means
// no padding (e.g. TAR-1 instead of TAR-00001).
func NewTaskIDGenerator(basePath, prefix string, padWidth int) TaskIDGenerator {
	return &fileTaskIDGenerator{basePath: basePath, prefix: prefix, padWidth: padWidth}
}

// GenerateTaskID reads the counter file, increments it, writes it back and
// returns the formatted ID ({prefix}-{counter}). A missing counter file
// starts the sequence at 1.
func (g *fileTaskIDGenerator) GenerateTaskID() (string, error) {
	counterPath := filepath.Join(g.basePath, ".tarefa_counter")

	counter := 0
	data, err := os.ReadFile(counterPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading task counter file: %w", err)
	}
	if err == nil {
		trimmed := strings.TrimSpace(string(data))
		counter, err = strconv.Atoi(trimmed)
		if err != nil {
			return "", fmt.Errorf("parsing task counter %q: %w", trimmed, err)
		}
	}

	counter++

	if err := os.MkdirAll(g.basePath, 0o750); err != nil {
		return "", fmt.Errorf("creating base path for task counter: %w", err)
	}
	if err := os.WriteFile(counterPath, []byte(strconv.Itoa(counter)), 0o600); err != nil {
		return "", fmt.Errorf("writing task counter file: %w", err)
	}

	if g.padWidth > 0 {
		return fmt.Sprintf("%s-%0*d", g.prefix, g.padWidth, counter), nil
	}
	return fmt.Sprintf("%s-%d", g.prefix, counter), nil
}
