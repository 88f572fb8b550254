// internal/domain/models/task.go
package models

import (
	"encoding/json"
	"strings"
)

// TaskStatus is the workflow state reported by the tasks API.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// ParseTaskStatus normalizes a wire value. Matching is case-insensitive and
// accepts dashes or spaces in place of underscores ("In Progress",
// "IN-PROGRESS"). Unknown values are returned lowercased so they still
// display, but they match none of the known constants.
func ParseTaskStatus(s string) TaskStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "_", " ", "_").Replace(v)
	switch v {
	case "todo", "to_do", "pending", "open":
		return TaskTodo
	case "in_progress", "inprogress", "doing":
		return TaskInProgress
	case "completed", "complete", "done":
		return TaskCompleted
	}
	return TaskStatus(v)
}

// UnmarshalJSON decodes and normalizes the status string.
func (s *TaskStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ParseTaskStatus(raw)
	return nil
}

// Task is a read-only task record owned by the tasks API.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// IsCompleted reports whether the task is finished.
func (t Task) IsCompleted() bool { return t.Status == TaskCompleted }

// IsInProgress reports whether the task is being worked on.
func (t Task) IsInProgress() bool { return t.Status == TaskInProgress }
