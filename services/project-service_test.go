package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/models"
)

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.projectSvc.now = fixedClock(testBase)

	created, err := f.projectSvc.CreateProject(ctx, models.Project{Name: "Portal"}, "ana@corp.io")
	require.NoError(t, err)
	assert.Equal(t, "ana@corp.io", created.CreatedBy)
	assert.Equal(t, string(models.PriorityMedium), created.Priority)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.ISOTime(testBase), created.CreatedAt)

	stored, err := f.projectSvc.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal", stored.Name)

	_, err = f.projectSvc.CreateProject(ctx, models.Project{}, "ana@corp.io")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestVisibleProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.projects.Append(ctx, models.Project{ID: "created", Name: "Created", CreatedBy: "ana@corp.io"}))
	require.NoError(t, f.projects.Append(ctx, models.Project{
		ID:        "assigned",
		Name:      "Assigned",
		CreatedBy: "marko@corp.io",
		Tasks:     []models.Task{{ID: "t1", TaskName: "For Ana", Assignee: "ana@corp.io"}},
	}))
	require.NoError(t, f.projects.Append(ctx, models.Project{
		ID:         "shared",
		Name:       "Shared",
		CreatedBy:  "marko@corp.io",
		SharedWith: []string{"ana@corp.io"},
	}))
	require.NoError(t, f.projects.Append(ctx, models.Project{ID: "hidden", Name: "Hidden", CreatedBy: "marko@corp.io"}))

	visible, err := f.projectSvc.VisibleProjects(ctx, "ana@corp.io")
	require.NoError(t, err)
	require.Len(t, visible, 3)
	names := []string{visible[0].Name, visible[1].Name, visible[2].Name}
	assert.Equal(t, []string{"Created", "Assigned", "Shared"}, names)
}

func TestUniqueAssignees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.SaveAll(ctx, []models.User{
		{Email: "ana@corp.io", FullName: "Ana Petrović"},
		{Email: "marko@corp.io", FullName: "Marko Marković"},
	}))

	project := &models.Project{
		ID:        "p1",
		CreatedBy: "ana@corp.io",
		Tasks: []models.Task{
			{ID: "t1", Assignee: "marko@corp.io"},
			{ID: "t2", Assignee: "ana@corp.io"},
			{ID: "t3", Assignee: "marko@corp.io"},
			{ID: "t4", Assignee: "ghost@corp.io"},
			{ID: "t5"},
		},
	}

	assignees, err := f.projectSvc.UniqueAssignees(ctx, project)
	require.NoError(t, err)
	require.Len(t, assignees, 3)

	// The reporter leads, then task assignees in first-seen order.
	assert.Equal(t, "Ana Petrović", assignees[0].Name)
	assert.Equal(t, "Marko Marković", assignees[1].Name)
	assert.Equal(t, "ghost@corp.io", assignees[2].Name)
}
