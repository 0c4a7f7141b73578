package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/internal/model"
)

// ProjectFilter narrows the admin project list.
type ProjectFilter struct {
	Published *bool
}

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindByTitle(ctx context.Context, title string) (*model.Project, error)
	List(ctx context.Context, filter ProjectFilter, page model.Page) ([]model.Project, int64, error)
	ListPublished(ctx context.Context) ([]model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// displayOrder is featured first, then the explicit order, then newest.
func displayOrder(db *gorm.DB) *gorm.DB {
	return db.Order("featured DESC").Order("display_order ASC").Order("created_at DESC")
}

// Create creates a new project.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return translate("create project", r.db.WithContext(ctx).Create(project).Error)
}

// Update writes every column of an existing project.
func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	res := r.db.WithContext(ctx).Model(project).Select("*").Omit("id", "created_at").Updates(project)
	if res.Error != nil {
		return translate("update project", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update project", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a project. A missing id is an error, not a no-op.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return translate("delete project", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete project", gorm.ErrRecordNotFound)
	}
	return nil
}

// FindByID finds a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate("find project", err)
	}
	return &project, nil
}

// FindByTitle finds the first project with the given title.
func (r *projectRepository) FindByTitle(ctx context.Context, title string) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&project).Error; err != nil {
		return nil, translate("find project by title", err)
	}
	return &project, nil
}

// List returns one page of projects and the total matching the filter.
func (r *projectRepository) List(ctx context.Context, filter ProjectFilter, page model.Page) ([]model.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate("count projects", err)
	}

	var projects []model.Project
	if err := displayOrder(query).Limit(page.Limit).Offset(page.Offset()).Find(&projects).Error; err != nil {
		return nil, 0, translate("list projects", err)
	}
	return projects, total, nil
}

// ListPublished lists every published project in display order.
func (r *projectRepository) ListPublished(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := displayOrder(r.db.WithContext(ctx).Where("published = ?", true)).Find(&projects).Error; err != nil {
		return nil, translate("list published projects", err)
	}
	return projects, nil
}
