package handlers

import (
	"errors"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/core/services"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles officer registration endpoints
type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// RegisterOfficerRequest represents registration request body
type RegisterOfficerRequest struct {
	ProjectID uint `json:"project_id"`
}

// Register handles an officer registering to handle a project
// @Summary Register for project
// @Description Register the calling officer to handle a project
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterOfficerRequest true "Target project"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /registrations [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	officerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RegisterOfficerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProjectID == 0 {
		return response.BadRequest(c, "Project ID is required")
	}

	registration, err := h.registrationService.Register(c.Context(), officerID, req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrAlreadyRegistered):
			return response.Conflict(c, "You already have an active registration")
		case errors.Is(err, services.ErrConflictingApplicantRole):
			return response.Conflict(c, "You have an active application for this project")
		case errors.Is(err, services.ErrNoSlots):
			return response.UnprocessableEntity(c, "No officer slots remain for this project")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only officers may register for projects")
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	return response.Created(c, "Registration submitted successfully", fiber.Map{
		"registration": registration.ToResponse(),
	})
}

// Mine lists the caller's registrations
// @Summary My registrations
// @Description List project registrations submitted by the calling officer
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /registrations/mine [get]
func (h *RegistrationHandler) Mine(c *fiber.Ctx) error {
	officerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	registrations, err := h.registrationService.GetMyRegistrations(c.Context(), officerID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list registrations")
	}

	items := make([]*models.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, r.ToResponse())
	}

	return response.Success(c, "Registrations retrieved successfully", fiber.Map{
		"registrations": items,
	})
}

// ListByProject lists registrations for one project
// @Summary List project registrations
// @Description List officer registrations for a project (owning manager only)
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /projects/{id}/registrations [get]
func (h *RegistrationHandler) ListByProject(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	registrations, err := h.registrationService.ListByProject(c.Context(), uint(projectID), managerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may list registrations")
		default:
			return response.InternalServerError(c, "Failed to list registrations")
		}
	}

	items := make([]*models.RegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, r.ToResponse())
	}

	return response.Success(c, "Registrations retrieved successfully", fiber.Map{
		"registrations": items,
	})
}

// Approve handles registration approval
// @Summary Approve registration
// @Description Approve a pending officer registration (owning manager only)
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	registrationID, err := c.ParamsInt("id")
	if err != nil || registrationID <= 0 {
		return response.BadRequest(c, "Invalid registration ID")
	}

	registration, err := h.registrationService.Approve(c.Context(), uint(registrationID), managerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may approve registrations")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.UnprocessableEntity(c, "Registration is not pending")
		case errors.Is(err, services.ErrNoSlots):
			return response.UnprocessableEntity(c, "No officer slots remain for this project")
		default:
			return response.InternalServerError(c, "Failed to approve registration")
		}
	}

	return response.Success(c, "Registration approved", fiber.Map{
		"registration": registration.ToResponse(),
	})
}

// Reject handles registration rejection
// @Summary Reject registration
// @Description Reject a pending officer registration (owning manager only)
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	registrationID, err := c.ParamsInt("id")
	if err != nil || registrationID <= 0 {
		return response.BadRequest(c, "Invalid registration ID")
	}

	registration, err := h.registrationService.Reject(c.Context(), uint(registrationID), managerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return response.NotFound(c, "Registration not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "Only the owning manager may reject registrations")
		case errors.Is(err, services.ErrInvalidTransition):
			return response.UnprocessableEntity(c, "Registration is not pending")
		default:
			return response.InternalServerError(c, "Failed to reject registration")
		}
	}

	return response.Success(c, "Registration rejected", fiber.Map{
		"registration": registration.ToResponse(),
	})
}
