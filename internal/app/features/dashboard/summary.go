// internal/app/features/dashboard/summary.go
package dashboard

import (
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// List caps for the recent sections.
const (
	MaxRecentProjects = 3
	MaxRecentTasks    = 5

	excerptLen = 120
)

// Summary is the derived, display-ready form of a Snapshot.
type Summary struct {
	ShowUsers bool

	UserCount       int
	ProjectCount    int
	TaskCount       int
	CompletedCount  int
	InProgressCount int

	RecentProjects []ProjectRow
	RecentTasks    []TaskRow
}

// ProjectRow is one line of the recent projects list.
type ProjectRow struct {
	ID        string
	Name      string
	Excerpt   string
	TaskCount int
}

// TaskRow is one line of the recent tasks list.
type TaskRow struct {
	ID      string
	Title   string
	Excerpt string
	Status  models.TaskStatus
	// StatusLabel is a message key for the status badge.
	StatusLabel string
}

// OtherCount is the number of tasks that are neither completed nor in
// progress.
func (s Summary) OtherCount() int {
	return s.TaskCount - s.CompletedCount - s.InProgressCount
}

// Summarize derives counts and capped lists. Counts always equal the
// lengths of the fetched lists; the recent lists keep backend order.
func Summarize(snap Snapshot) Summary {
	s := Summary{
		ShowUsers:    snap.User.IsAdmin(),
		ProjectCount: len(snap.Projects),
		TaskCount:    len(snap.Tasks),
	}
	if s.ShowUsers {
		s.UserCount = len(snap.Users)
	}

	for _, t := range snap.Tasks {
		switch {
		case t.IsCompleted():
			s.CompletedCount++
		case t.IsInProgress():
			s.InProgressCount++
		}
	}

	s.RecentProjects = make([]ProjectRow, 0, min(len(snap.Projects), MaxRecentProjects))
	for _, p := range snap.Projects[:min(len(snap.Projects), MaxRecentProjects)] {
		s.RecentProjects = append(s.RecentProjects, ProjectRow{
			ID:        p.ID,
			Name:      p.Name,
			Excerpt:   htmlsanitize.Excerpt(p.Description, excerptLen),
			TaskCount: p.TaskCount,
		})
	}

	s.RecentTasks = make([]TaskRow, 0, min(len(snap.Tasks), MaxRecentTasks))
	for _, t := range snap.Tasks[:min(len(snap.Tasks), MaxRecentTasks)] {
		s.RecentTasks = append(s.RecentTasks, TaskRow{
			ID:      t.ID,
			Title:   t.Title,
			Excerpt: htmlsanitize.Excerpt(t.Description, excerptLen),
			Status:  t.Status,

			StatusLabel: statusLabel(t.Status),
		})
	}

	return s
}

func statusLabel(s models.TaskStatus) string {
	switch s {
	case models.TaskCompleted:
		return i18n.MsgCompleted
	case models.TaskInProgress:
		return i18n.MsgInProgress
	case models.TaskTodo:
		return i18n.MsgToDo
	default:
		return i18n.MsgOther
	}
}
