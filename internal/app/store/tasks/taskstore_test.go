package taskstore_test

import (
	"context"
	"testing"

	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
)

func TestListAll_DecodesStatus(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Tasks = []models.Task{
		{ID: "t1", Title: "Write", Status: models.TaskCompleted},
		{ID: "t2", Title: "Review", Status: models.TaskInProgress},
	}

	tasks, err := taskstore.New(apiclient.New("tasks", api.URL())).ListAll(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(tasks) != 2 || !tasks[0].IsCompleted() || !tasks[1].IsInProgress() {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestListAssigned_Empty(t *testing.T) {
	api := testutil.NewFakeAPI(t)

	tasks, err := taskstore.New(apiclient.New("tasks", api.URL())).ListAssigned(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListAssigned: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("tasks = %#v, want empty non-nil", tasks)
	}
}

func TestListAssigned_Unauthorized(t *testing.T) {
	api := testutil.NewFakeAPI(t)

	_, err := taskstore.New(apiclient.New("tasks", api.URL())).ListAssigned(context.Background(), "")
	if !apiclient.IsUnauthorized(err) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}
