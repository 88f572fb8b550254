// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Store reads project records from the projects API.
type Store struct {
	c *apiclient.Client
}

// New creates a Store backed by the given projects API client.
func New(c *apiclient.Client) *Store {
	return &Store{c: c}
}

// ListAll returns every project (admin scope).
// GET /projects
func (s *Store) ListAll(ctx context.Context, token string) ([]models.Project, error) {
	ps, err := apiclient.GetList[models.Project](ctx, s.c, token, "/projects")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

// ListAssigned returns the projects the token's user belongs to.
// GET /projects/assigned
func (s *Store) ListAssigned(ctx context.Context, token string) ([]models.Project, error) {
	ps, err := apiclient.GetList[models.Project](ctx, s.c, token, "/projects/assigned")
	if err != nil {
		return nil, fmt.Errorf("list assigned projects: %w", err)
	}
	return ps, nil
}
