// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Store reads task records from the tasks API.
type Store struct {
	c *apiclient.Client
}

// New creates a Store backed by the given tasks API client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

// ListAll returns every task (admin scope).
// GET /tasks
func (s *Store) ListAll(ctx context.Context, token string) ([]models.Task, error) {
	ts, err := apiclient.GetList[models.Task](ctx, s.c, token, "/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return ts, nil
}

// ListAssigned returns tasks assigned to the token's user.
// GET /tasks/assigned
func (s *Store) ListAssigned(ctx context.Context, token string) ([]models.Task, error) {
	ts, err := apiclient.GetList[models.Task](ctx, s.c, token, "/tasks/assigned")
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return ts, nil
}
