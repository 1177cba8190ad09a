package core

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/tarefalabs/tarefa/pkg/models"
)

// FieldError is a validation failure attributed to a specific task field.
// The caller surfaces it against that field; no partial save happens.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeTag trims and uppercases a raw tag token. Tokens that are empty
// after trimming or contain internal whitespace are rejected.
func NormalizeTag(raw string) (string, error) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return "", &FieldError{Field: "tags", Message: "tag must not be empty"}
	}
	for _, r := range tag {
		if unicode.IsSpace(r) {
			return "", &FieldError{Field: "tags", Message: fmt.Sprintf("tag %q must not contain whitespace", raw)}
		}
	}
	return strings.ToUpper(tag), nil
}

// NormalizeTags normalizes each token and drops duplicates, preserving
// first-occurrence order.
func NormalizeTags(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		tag, err := NormalizeTag(r)
		if err != nil {
			return nil, err
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

// ValidateTask checks the task against the edit-flow rules: non-empty
// title, a known priority, well-formed tags, and a due date not before the
// start of today for incomplete tasks. The first violation is returned as
// a *FieldError.
func ValidateTask(task models.Task, now time.Time) error {
	if strings.TrimSpace(task.Title) == "" {
		return &FieldError{Field: "title", Message: "title must not be empty"}
	}
	if !task.Priority.Valid() {
		return &FieldError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", task.Priority)}
	}
	if task.DueDate.IsZero() {
		return &FieldError{Field: "dueDate", Message: "due date is required"}
	}
	for _, tag := range task.Tags {
		normalized, err := NormalizeTag(tag)
		if err != nil {
			return err
		}
		if normalized != tag {
			return &FieldError{Field: "tags", Message: fmt.Sprintf("tag %q is not normalized", tag)}
		}
	}
	if !task.IsCompleted && task.DueDate.Before(StartOfDay(now)) {
		return &FieldError{Field: "dueDate", Message: "due date must not be in the past for an incomplete task"}
	}
	return nil
}
