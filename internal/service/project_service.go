package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/cache"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/upload"
	"portfolio/internal/validation"
)

const publicProjectsKey = "portfolio:public:projects"

// ProjectInput is a new project as submitted by the admin dashboard.
type ProjectInput struct {
	Title           string                `json:"title" validate:"required"`
	Description     string                `json:"description" validate:"required"`
	LongDescription string                `json:"longDescription"`
	Technologies    []string              `json:"technologies" validate:"min=1,dive,required"`
	Category        model.ProjectCategory `json:"category" validate:"required,oneof=WEB_APP MOBILE_APP API LIBRARY TOOL GAME OTHER"`
	Featured        bool                  `json:"featured"`
	GithubURL       string                `json:"githubUrl" validate:"omitempty,url"`
	LiveURL         string                `json:"liveUrl" validate:"omitempty,url"`
	Status          model.ProjectStatus   `json:"status" validate:"required,oneof=COMPLETED IN_PROGRESS PLANNED"`
	StartDate       string                `json:"startDate" validate:"required"`
	EndDate         string                `json:"endDate"`
	Challenges      []string              `json:"challenges"`
	Learnings       []string              `json:"learnings"`
	Metrics         []model.ProjectMetric `json:"metrics" validate:"dive"`
	Order           int                   `json:"order"`
	Published       bool                  `json:"published"`

	MainImage        *multipart.FileHeader   `json:"-"`
	AdditionalImages []*multipart.FileHeader `json:"-"`
}

// ProjectPatch carries the fields of a partial project update. Nil means
// "leave unchanged"; a pointer to an empty string clears an optional field.
type ProjectPatch struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	LongDescription *string                `json:"longDescription"`
	Image           *string                `json:"image"`
	Images          *[]string              `json:"images"`
	Technologies    *[]string              `json:"technologies"`
	Category        *model.ProjectCategory `json:"category"`
	Featured        *bool                  `json:"featured"`
	GithubURL       *string                `json:"githubUrl"`
	LiveURL         *string                `json:"liveUrl"`
	Status          *model.ProjectStatus   `json:"status"`
	StartDate       *string                `json:"startDate"`
	EndDate         *string                `json:"endDate"`
	Challenges      *[]string              `json:"challenges"`
	Learnings       *[]string              `json:"learnings"`
	Metrics         *[]model.ProjectMetric `json:"metrics"`
	Order           *int                   `json:"order"`
	Published       *bool                  `json:"published"`
}

// ProjectService handles project operations.
type ProjectService interface {
	ListPublic(ctx context.Context) ([]model.PublicProject, error)
	List(ctx context.Context, filter repository.ProjectFilter, page model.Page) ([]model.Project, model.Pagination, error)
	Create(ctx context.Context, input ProjectInput) (*model.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	uploads     *upload.Store
	validator   *validation.Validator
	cache       *cache.Client
	cacheTTL    time.Duration
}

// NewProjectService creates a new project service. cache may be nil.
func NewProjectService(projectRepo repository.ProjectRepository, uploads *upload.Store, validator *validation.Validator, cache *cache.Client, cacheTTL time.Duration) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		uploads:     uploads,
		validator:   validator,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// ListPublic returns the published projects, served from cache when possible.
func (s *projectService) ListPublic(ctx context.Context) ([]model.PublicProject, error) {
	key, cacheable := s.cache.Versioned(ctx, publicProjectsKey)
	var cached []model.PublicProject
	if cacheable && s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	projects, err := s.projectRepo.ListPublished(ctx)
	if err != nil {
		return nil, apperrors.Fail(err, "Failed to fetch projects")
	}
	out := make([]model.PublicProject, 0, len(projects))
	for i := range projects {
		out = append(out, projects[i].Public())
	}

	if cacheable {
		_ = s.cache.SetJSON(ctx, key, out, s.cacheTTL)
	}
	return out, nil
}

// List returns one page of projects for the admin dashboard.
func (s *projectService) List(ctx context.Context, filter repository.ProjectFilter, page model.Page) ([]model.Project, model.Pagination, error) {
	projects, total, err := s.projectRepo.List(ctx, filter, page)
	if err != nil {
		return nil, model.Pagination{}, apperrors.Fail(err, "Failed to fetch projects")
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, model.NewPagination(page, total), nil
}

// Create validates the input and every file, then writes the files and the row.
func (s *projectService) Create(ctx context.Context, input ProjectInput) (*model.Project, error) {
	fields := s.validator.Fields(&input)
	if input.MainImage == nil {
		fields = append(fields, apperrors.FieldError{Field: "mainImage", Message: "Main image is required"})
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("Invalid data", fields...)
	}

	if err := s.uploads.Check("mainImage", input.MainImage); err != nil {
		return nil, apperrors.Fail(err, "Failed to create project")
	}
	for _, fh := range input.AdditionalImages {
		if err := s.uploads.Check("additionalImages", fh); err != nil {
			return nil, apperrors.Fail(err, "Failed to create project")
		}
	}

	mainPath, err := s.uploads.Save(input.MainImage, upload.DirProjects, "main")
	if err != nil {
		return nil, apperrors.Internal("Failed to create project", err)
	}
	images := []string{mainPath}
	for _, fh := range input.AdditionalImages {
		p, err := s.uploads.Save(fh, upload.DirProjects, "")
		if err != nil {
			return nil, apperrors.Internal("Failed to create project", err)
		}
		images = append(images, p)
	}

	project := &model.Project{
		Title:           input.Title,
		Description:     input.Description,
		LongDescription: optional(input.LongDescription),
		Image:           mainPath,
		Images:          images,
		Technologies:    input.Technologies,
		Category:        input.Category,
		Featured:        input.Featured,
		GithubURL:       optional(input.GithubURL),
		LiveURL:         optional(input.LiveURL),
		Status:          input.Status,
		StartDate:       input.StartDate,
		EndDate:         optional(input.EndDate),
		Challenges:      input.Challenges,
		Learnings:       input.Learnings,
		Metrics:         input.Metrics,
		Order:           input.Order,
		Published:       input.Published,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, apperrors.Fail(err, "Failed to create project")
	}

	s.invalidate(ctx)
	return project, nil
}

// Update applies patch to the project with id.
func (s *projectService) Update(ctx context.Context, id uuid.UUID, patch ProjectPatch) (*model.Project, error) {
	if fields := s.checkPatch(patch); len(fields) > 0 {
		return nil, apperrors.Validation("Invalid data", fields...)
	}

	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Fail(err, "Failed to update project")
	}
	patch.apply(project)

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, apperrors.Fail(err, "Failed to update project")
	}

	s.invalidate(ctx)
	return project, nil
}

// Delete removes the project with id. Unknown ids fail.
func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return apperrors.Fail(err, "Failed to delete project")
	}
	s.invalidate(ctx)
	return nil
}

func (s *projectService) invalidate(ctx context.Context) {
	_ = s.cache.Bump(ctx, publicProjectsKey)
}

func (s *projectService) checkPatch(p ProjectPatch) []apperrors.FieldError {
	var fields []apperrors.FieldError
	required := func(field string, v *string) {
		if v != nil && *v == "" {
			fields = append(fields, apperrors.FieldError{Field: field, Message: "This field is required"})
		}
	}
	url := func(field string, v *string) {
		if v != nil && *v != "" && !s.validator.URL(*v) {
			fields = append(fields, apperrors.FieldError{Field: field, Message: "Must be a valid URL"})
		}
	}

	required("title", p.Title)
	required("description", p.Description)
	required("image", p.Image)
	required("startDate", p.StartDate)
	url("githubUrl", p.GithubURL)
	url("liveUrl", p.LiveURL)
	if p.Technologies != nil && len(*p.Technologies) == 0 {
		fields = append(fields, apperrors.FieldError{Field: "technologies", Message: "Must contain at least 1 item(s)"})
	}
	if p.Category != nil && !p.Category.Valid() {
		fields = append(fields, apperrors.FieldError{Field: "category", Message: "Must be one of: WEB_APP, MOBILE_APP, API, LIBRARY, TOOL, GAME, OTHER"})
	}
	if p.Status != nil && !p.Status.Valid() {
		fields = append(fields, apperrors.FieldError{Field: "status", Message: "Must be one of: COMPLETED, IN_PROGRESS, PLANNED"})
	}
	if p.Metrics != nil {
		for i, m := range *p.Metrics {
			if m.Label == "" {
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("metrics[%d].label", i), Message: "This field is required"})
			}
			if m.Value == "" {
				fields = append(fields, apperrors.FieldError{Field: fmt.Sprintf("metrics[%d].value", i), Message: "This field is required"})
			}
		}
	}
	return fields
}

func (p ProjectPatch) apply(project *model.Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.LongDescription != nil {
		project.LongDescription = optional(*p.LongDescription)
	}
	if p.Image != nil {
		project.Image = *p.Image
	}
	if p.Images != nil {
		project.Images = *p.Images
	}
	if p.Technologies != nil {
		project.Technologies = *p.Technologies
	}
	if p.Category != nil {
		project.Category = *p.Category
	}
	if p.Featured != nil {
		project.Featured = *p.Featured
	}
	if p.GithubURL != nil {
		project.GithubURL = optional(*p.GithubURL)
	}
	if p.LiveURL != nil {
		project.LiveURL = optional(*p.LiveURL)
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.StartDate != nil {
		project.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		project.EndDate = optional(*p.EndDate)
	}
	if p.Challenges != nil {
		project.Challenges = *p.Challenges
	}
	if p.Learnings != nil {
		project.Learnings = *p.Learnings
	}
	if p.Metrics != nil {
		project.Metrics = *p.Metrics
	}
	if p.Order != nil {
		project.Order = *p.Order
	}
	if p.Published != nil {
		project.Published = *p.Published
	}
}

// optional maps the empty string to NULL.
func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
