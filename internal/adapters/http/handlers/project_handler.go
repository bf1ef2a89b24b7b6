package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/core/services"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	userService    *services.UserService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, userService *services.UserService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		userService:    userService,
	}
}

// FlatRequest represents one flat type line in a project request
type FlatRequest struct {
	FlatType     string  `json:"flat_type"`
	Units        int     `json:"units"`
	SellingPrice float64 `json:"selling_price"`
}

// CreateProjectRequest represents project creation request body
type CreateProjectRequest struct {
	Name         string        `json:"name"`
	Neighborhood string        `json:"neighborhood"`
	OpenDate     time.Time     `json:"open_date"`
	CloseDate    time.Time     `json:"close_date"`
	OfficerSlots int           `json:"officer_slots"`
	Flats        []FlatRequest `json:"flats"`
}

// UpdateProjectRequest represents project update request body
type UpdateProjectRequest struct {
	Neighborhood *string    `json:"neighborhood"`
	OpenDate     *time.Time `json:"open_date"`
	CloseDate    *time.Time `json:"close_date"`
	OfficerSlots *int       `json:"officer_slots"`
}

// VisibilityRequest represents visibility toggle request body
type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

// List lists projects visible to the caller
// @Summary List projects
// @Description List projects the caller may see. Managers see everything.
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	projects, err := h.projectService.ListForUser(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	items := make([]*models.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.ToResponse())
	}

	return response.Success(c, "Projects retrieved successfully", fiber.Map{
		"projects": items,
	})
}

// Get returns one project
// @Summary Get project
// @Description Get a project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	project, err := h.projectService.GetByID(c.Context(), uint(projectID))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to get project")
	}

	return response.Success(c, "Project retrieved successfully", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Create creates a project
// @Summary Create project
// @Description Create a new listing owned by the calling manager
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateProjectRequest true "Project data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Project name is required")
	}
	if len(req.Flats) == 0 {
		return response.BadRequest(c, "At least one flat type is required")
	}

	flats := make([]services.FlatInput, 0, len(req.Flats))
	for _, f := range req.Flats {
		flats = append(flats, services.FlatInput{
			FlatType:     f.FlatType,
			Units:        f.Units,
			SellingPrice: f.SellingPrice,
		})
	}

	input := &services.CreateProjectInput{
		Name:         strings.TrimSpace(req.Name),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		OpenDate:     req.OpenDate,
		CloseDate:    req.CloseDate,
		OfficerSlots: req.OfficerSlots,
		Flats:        flats,
	}

	project, err := h.projectService.Create(c.Context(), managerID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidWindow):
			return response.BadRequest(c, "Close date must not be before open date")
		case errors.Is(err, services.ErrInvalidOfficerSlots):
			return response.BadRequest(c, "Officer slots must be between 1 and 10")
		case errors.Is(err, services.ErrProjectNameTaken):
			return response.Conflict(c, "Project name already in use")
		case errors.Is(err, services.ErrOverlappingWindow):
			return response.Conflict(c, "You already run a project in this application period")
		default:
			return response.InternalServerError(c, "Failed to create project")
		}
	}

	return response.Created(c, "Project created successfully", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Update edits a project
// @Summary Update project
// @Description Edit a listing owned by the calling manager
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateProjectInput{
		Neighborhood: req.Neighborhood,
		OpenDate:     req.OpenDate,
		CloseDate:    req.CloseDate,
		OfficerSlots: req.OfficerSlots,
	}

	project, err := h.projectService.Update(c.Context(), uint(projectID), managerID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may edit this project")
		case errors.Is(err, services.ErrInvalidWindow):
			return response.BadRequest(c, "Close date must not be before open date")
		case errors.Is(err, services.ErrInvalidOfficerSlots):
			return response.BadRequest(c, "Officer slots must be between 1 and 10")
		case errors.Is(err, services.ErrProjectHasApplications):
			return response.Conflict(c, "Application window is frozen once applications exist")
		case errors.Is(err, services.ErrOverlappingWindow):
			return response.Conflict(c, "You already run a project in this application period")
		default:
			return response.InternalServerError(c, "Failed to update project")
		}
	}

	return response.Success(c, "Project updated successfully", fiber.Map{
		"project": project.ToResponse(),
	})
}

// Delete removes a project
// @Summary Delete project
// @Description Delete a listing with no applications
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(c.Context(), uint(projectID), managerID); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may delete this project")
		case errors.Is(err, services.ErrProjectHasApplications):
			return response.Conflict(c, "Project has applications and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete project")
		}
	}

	return response.Success(c, "Project deleted successfully", nil)
}

// SetVisibility toggles a project's visibility
// @Summary Toggle visibility
// @Description Show or hide a listing from applicants
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param body body VisibilityRequest true "Visibility flag"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id}/visibility [patch]
func (h *ProjectHandler) SetVisibility(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	var req VisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	project, err := h.projectService.SetVisibility(c.Context(), uint(projectID), managerID, req.Visible)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may change visibility")
		default:
			return response.InternalServerError(c, "Failed to update visibility")
		}
	}

	return response.Success(c, "Visibility updated successfully", fiber.Map{
		"project": project.ToResponse(),
	})
}

// MyProjects lists projects owned by the calling manager
// @Summary My projects
// @Description List listings created by the calling manager
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /projects/mine [get]
func (h *ProjectHandler) MyProjects(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projects, err := h.projectService.GetMyProjects(c.Context(), managerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list projects")
	}

	items := make([]*models.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.ToResponse())
	}

	return response.Success(c, "Projects retrieved successfully", fiber.Map{
		"projects": items,
	})
}
