package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// ProjectHandler handles public and admin project endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectListResponse is one page of projects.
type ProjectListResponse struct {
	Projects   []model.Project  `json:"projects"`
	Pagination model.Pagination `json:"pagination"`
}

// ProjectResponse acknowledges a create or update.
type ProjectResponse struct {
	Message string         `json:"message"`
	Project *model.Project `json:"project"`
}

// UpdateProjectRequest is a partial update addressed by id.
type UpdateProjectRequest struct {
	ID string `json:"id"`
	service.ProjectPatch
}

// ListPublic godoc
// @Summary Published projects
// @Tags projects
// @Produce json
// @Success 200 {array} model.PublicProject
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) ListPublic(c echo.Context) error {
	projects, err := h.projectService.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// List godoc
// @Summary All projects, paged
// @Tags admin-projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param published query bool false "Only published or unpublished projects"
// @Success 200 {object} ProjectListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	var filter repository.ProjectFilter
	if raw := c.QueryParam("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.Field("published", "Must be true or false")
		}
		filter.Published = &published
	}

	projects, pagination, err := h.projectService.List(c.Request().Context(), filter, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProjectListResponse{Projects: projects, Pagination: pagination})
}

// Create godoc
// @Summary Create a project
// @Tags admin-projects
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Short description"
// @Param longDescription formData string false "Long description"
// @Param category formData string true "WEB_APP, MOBILE_APP, API, LIBRARY, TOOL, GAME or OTHER"
// @Param status formData string true "COMPLETED, IN_PROGRESS or PLANNED"
// @Param startDate formData string true "Start date"
// @Param endDate formData string false "End date"
// @Param featured formData bool false "Featured"
// @Param published formData bool false "Published, true when omitted"
// @Param order formData int false "Display order"
// @Param githubUrl formData string false "Repository URL"
// @Param liveUrl formData string false "Live URL"
// @Param technologies formData string true "JSON array of strings"
// @Param challenges formData string false "JSON array of strings"
// @Param learnings formData string false "JSON array of strings"
// @Param metrics formData string false "JSON array of {label,value,description}"
// @Param mainImage formData file true "Main image"
// @Param additionalImages formData file false "Additional images"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	input := service.ProjectInput{
		Title:            c.FormValue("title"),
		Description:      c.FormValue("description"),
		LongDescription:  c.FormValue("longDescription"),
		Category:         model.ProjectCategory(c.FormValue("category")),
		Featured:         formBool(c, "featured"),
		GithubURL:        strings.TrimSpace(c.FormValue("githubUrl")),
		LiveURL:          strings.TrimSpace(c.FormValue("liveUrl")),
		Status:           model.ProjectStatus(c.FormValue("status")),
		StartDate:        c.FormValue("startDate"),
		EndDate:          c.FormValue("endDate"),
		Published:        true,
		MainImage:        formFile(c, "mainImage"),
		AdditionalImages: formFiles(c, "additionalImages"),
	}
	if raw := c.FormValue("published"); raw != "" {
		input.Published = raw == "true"
	}
	input.Order, _ = strconv.Atoi(c.FormValue("order"))

	var fields []apperrors.FieldError
	for _, fe := range []*apperrors.FieldError{
		formJSON(c, "technologies", &input.Technologies),
		formJSON(c, "challenges", &input.Challenges),
		formJSON(c, "learnings", &input.Learnings),
		formJSON(c, "metrics", &input.Metrics),
	} {
		if fe != nil {
			fields = append(fields, *fe)
		}
	}
	if len(fields) > 0 {
		return apperrors.Validation("Invalid data", fields...)
	}

	project, err := h.projectService.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProjectResponse{Message: "Project created successfully", Project: project})
}

// Update godoc
// @Summary Partially update a project
// @Tags admin-projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProjectRequest true "Project id and changed fields"
// @Success 200 {object} ProjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/projects [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req UpdateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	id, err := parseID(req.ID, "Project ID is required", "Failed to update project")
	if err != nil {
		return err
	}

	project, err := h.projectService.Update(c.Request().Context(), id, req.ProjectPatch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ProjectResponse{Message: "Project updated successfully", Project: project})
}

// Delete godoc
// @Summary Delete a project
// @Tags admin-projects
// @Produce json
// @Security BearerAuth
// @Param id query string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/projects [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := idFromQuery(c, "Project ID is required", "Failed to delete project")
	if err != nil {
		return err
	}
	if err := h.projectService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Project deleted successfully"})
}
