// internal/domain/models/project.go
package models

// Project is a read-only project record owned by the projects API.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TaskCount   int    `json:"task_count"`
}
