// internal/app/features/dashboard/load.go
package dashboard

import (
	"context"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// UserSource reads users from the users API.
type UserSource interface {
	Profile(ctx context.Context, token string) (models.User, error)
	List(ctx context.Context, token string) ([]models.User, error)
}

// ProjectSource reads projects from the projects API.
type ProjectSource interface {
	ListAll(ctx context.Context, token string) ([]models.Project, error)
	ListAssigned(ctx context.Context, token string) ([]models.Project, error)
}

// TaskSource reads tasks from the tasks API.
type TaskSource interface {
	ListAll(ctx context.Context, token string) ([]models.Task, error)
	ListAssigned(ctx context.Context, token string) ([]models.Task, error)
}

// Loader gathers everything the dashboard shows for one user.
type Loader struct {
	Users    UserSource
	Projects ProjectSource
	Tasks    TaskSource
}

// Snapshot is the raw result of one dashboard load. Users is nil for
// non-admins.
type Snapshot struct {
	User     models.User
	Users    []models.User
	Projects []models.Project
	Tasks    []models.Task
}

// Load fetches the profile, then the role-scoped lists in parallel.
// Admins get every user, project and task; everyone else gets the projects
// and tasks assigned to them. The first failure cancels the remaining
// fetches and is returned.
func (l *Loader) Load(ctx context.Context, token string) (Snapshot, error) {
	var snap Snapshot

	user, err := l.Users.Profile(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	snap.User = user

	g, gctx := errgroup.WithContext(ctx)

	if user.IsAdmin() {
		g.Go(func() error {
			users, err := l.Users.List(gctx, token)
			if err != nil {
				return err
			}
			snap.Users = users
			return nil
		})
		g.Go(func() error {
			projects, err := l.Projects.ListAll(gctx, token)
			if err != nil {
				return err
			}
			snap.Projects = projects
			return nil
		})
		g.Go(func() error {
			tasks, err := l.Tasks.ListAll(gctx, token)
			if err != nil {
				return err
			}
			snap.Tasks = tasks
			return nil
		})
	} else {
		g.Go(func() error {
			projects, err := l.Projects.ListAssigned(gctx, token)
			if err != nil {
				return err
			}
			snap.Projects = projects
			return nil
		})
		g.Go(func() error {
			tasks, err := l.Tasks.ListAssigned(gctx, token)
			if err != nil {
				return err
			}
			snap.Tasks = tasks
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
