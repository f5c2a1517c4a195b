package repositories

import (
	"context"
	"fmt"

	"teamboard/collab-core/models"
)

const projectsKey = "projects"

// ProjectRepository reads and writes the projects collection as one blob.
type ProjectRepository struct {
	store *Store
}

func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

func (r *ProjectRepository) LoadAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.store.Load(ctx, projectsKey, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) SaveAll(ctx context.Context, projects []models.Project) error {
	return r.store.Save(ctx, projectsKey, projects)
}

// GetByID returns a copy of one project.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*models.Project, error) {
	projects, err := r.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == projectID {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
}

// WithProject runs mutate against the identified project inside a single
// locked read-patch-write cycle. The whole collection is re-written on
// success; any error from mutate aborts without persisting.
func (r *ProjectRepository) WithProject(ctx context.Context, projectID string, mutate func(*models.Project) error) error {
	return r.store.WithLock(projectsKey, func() error {
		projects, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}

		idx := -1
		for i := range projects {
			if projects[i].ID == projectID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
		}

		if err := mutate(&projects[idx]); err != nil {
			return err
		}
		return r.SaveAll(ctx, projects)
	})
}

// Append adds a new project under the collection lock.
func (r *ProjectRepository) Append(ctx context.Context, project models.Project) error {
	return r.store.WithLock(projectsKey, func() error {
		projects, err := r.LoadAll(ctx)
		if err != nil {
			return err
		}
		return r.SaveAll(ctx, append(projects, project))
	})
}
