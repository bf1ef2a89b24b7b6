package handlers

import (
	"errors"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/core/services"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/pagination"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ApplicationHandler handles application lifecycle endpoints
type ApplicationHandler struct {
	applicationService *services.ApplicationService
	withdrawalService  *services.WithdrawalService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(
	applicationService *services.ApplicationService,
	withdrawalService *services.WithdrawalService,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		withdrawalService:  withdrawalService,
	}
}

// SubmitApplicationRequest represents application submission request body
type SubmitApplicationRequest struct {
	ProjectID uint   `json:"project_id"`
	FlatType  string `json:"flat_type"`
}

// BookApplicationRequest represents booking request body
type BookApplicationRequest struct {
	FlatType string `json:"flat_type"`
}

// Submit handles application submission
// @Summary Submit application
// @Description Submit a new application for a flat type in an open project
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitApplicationRequest true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	applicantID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProjectID == 0 {
		return response.BadRequest(c, "Project ID is required")
	}
	if req.FlatType == "" {
		return response.BadRequest(c, "Flat type is required")
	}

	input := &services.SubmitInput{
		ProjectID: req.ProjectID,
		FlatType:  req.FlatType,
	}

	application, err := h.applicationService.Submit(c.Context(), applicantID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrWindowClosed):
			return response.UnprocessableEntity(c, "Project application window is closed")
		case errors.Is(err, services.ErrDuplicateApplication):
			return response.Conflict(c, "You already have an active application")
		case errors.Is(err, services.ErrConflictingApplicantRole):
			return response.Conflict(c, "You are registered as an officer for this project")
		case errors.Is(err, services.ErrNotEligible):
			return response.UnprocessableEntity(c, "You are not eligible for this flat type")
		case errors.Is(err, services.ErrFlatTypeNotOffered):
			return response.BadRequest(c, "Project does not offer this flat type")
		case errors.Is(err, services.ErrNoInventory):
			return response.UnprocessableEntity(c, "No units of this flat type remain")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "This account cannot submit applications")
		default:
			return response.InternalServerError(c, "Failed to submit application")
		}
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"application": application.ToResponse(),
	})
}

// Mine lists the caller's applications
// @Summary My applications
// @Description List applications submitted by the caller
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications/mine [get]
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	applicantID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applications, err := h.applicationService.GetMyApplications(c.Context(), applicantID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	items := make([]*models.ApplicationResponse, 0, len(applications))
	for _, a := range applications {
		items = append(items, a.ToResponse())
	}

	return response.Success(c, "Applications retrieved successfully", fiber.Map{
		"applications": items,
	})
}

// ListByProject lists applications for one project
// @Summary List project applications
// @Description List applications for a project (owning manager or approved officer)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Failure 403 {object} response.Response
// @Router /projects/{id}/applications [get]
func (h *ApplicationHandler) ListByProject(c *fiber.Ctx) error {
	staffID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	params := pagination.GetParams(c)

	applications, total, err := h.applicationService.ListByProject(c.Context(), uint(projectID), staffID, params.Offset, params.Limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			return response.NotFound(c, "Project not found")
		case errors.Is(err, services.ErrNotAuthorized):
			return response.Forbidden(c, "You are not handling this project")
		default:
			return response.InternalServerError(c, "Failed to list applications")
		}
	}

	items := make([]interface{}, 0, len(applications))
	for _, a := range applications {
		items = append(items, a.ToResponse())
	}

	return c.JSON(pagination.NewResponse(items, params, total))
}

// Approve handles application approval
// @Summary Approve application
// @Description Move a pending application to SUCCESSFUL (owning manager only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.applicationService.Approve(c.Context(), uint(applicationID), managerID)
	if err != nil {
		return h.lifecycleError(c, err, "Failed to approve application")
	}

	return response.Success(c, "Application approved successfully", fiber.Map{
		"application": application.ToResponse(),
	})
}

// Reject handles application rejection
// @Summary Reject application
// @Description Move an application to UNSUCCESSFUL (owning manager only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.applicationService.Reject(c.Context(), uint(applicationID), managerID)
	if err != nil {
		return h.lifecycleError(c, err, "Failed to reject application")
	}

	return response.Success(c, "Application rejected", fiber.Map{
		"application": application.ToResponse(),
	})
}

// Book handles flat booking
// @Summary Book flat
// @Description Book a flat for a successful application (approved officer only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param body body BookApplicationRequest false "Optional final flat type"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/book [post]
func (h *ApplicationHandler) Book(c *fiber.Ctx) error {
	officerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req BookApplicationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	input := &services.BookInput{FlatType: req.FlatType}

	application, err := h.applicationService.Book(c.Context(), uint(applicationID), input, officerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoInventory):
			return response.UnprocessableEntity(c, "No units of this flat type remain")
		case errors.Is(err, services.ErrFlatTypeNotOffered):
			return response.BadRequest(c, "Project does not offer this flat type")
		case errors.Is(err, services.ErrNotEligible):
			return response.UnprocessableEntity(c, "Applicant is not eligible for this flat type")
		default:
			return h.lifecycleError(c, err, "Failed to book flat")
		}
	}

	return response.Success(c, "Flat booked successfully", fiber.Map{
		"application": application.ToResponse(),
	})
}

// RequestWithdrawal handles a withdrawal request
// @Summary Request withdrawal
// @Description Flag the caller's application for withdrawal
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/withdrawal [post]
func (h *ApplicationHandler) RequestWithdrawal(c *fiber.Ctx) error {
	applicantID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.withdrawalService.Request(c.Context(), uint(applicationID), applicantID)
	if err != nil {
		return h.lifecycleError(c, err, "Failed to request withdrawal")
	}

	return response.Success(c, "Withdrawal requested", fiber.Map{
		"application": application.ToResponse(),
	})
}

// ApproveWithdrawal handles withdrawal approval
// @Summary Approve withdrawal
// @Description Approve a withdrawal request, releasing any booked unit (owning manager only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/withdrawal/approve [post]
func (h *ApplicationHandler) ApproveWithdrawal(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.withdrawalService.Approve(c.Context(), uint(applicationID), managerID)
	if err != nil {
		if errors.Is(err, services.ErrNoWithdrawalRequest) {
			return response.UnprocessableEntity(c, "No withdrawal has been requested")
		}
		return h.lifecycleError(c, err, "Failed to approve withdrawal")
	}

	return response.Success(c, "Withdrawal approved", fiber.Map{
		"application": application.ToResponse(),
	})
}

// RejectWithdrawal handles withdrawal rejection
// @Summary Reject withdrawal
// @Description Reject a withdrawal request, leaving the application untouched (owning manager only)
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/withdrawal/reject [post]
func (h *ApplicationHandler) RejectWithdrawal(c *fiber.Ctx) error {
	managerID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	applicationID, err := c.ParamsInt("id")
	if err != nil || applicationID <= 0 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.withdrawalService.Reject(c.Context(), uint(applicationID), managerID)
	if err != nil {
		if errors.Is(err, services.ErrNoWithdrawalRequest) {
			return response.UnprocessableEntity(c, "No withdrawal has been requested")
		}
		return h.lifecycleError(c, err, "Failed to reject withdrawal")
	}

	return response.Success(c, "Withdrawal rejected", fiber.Map{
		"application": application.ToResponse(),
	})
}

// lifecycleError maps the shared lifecycle errors to HTTP responses
func (h *ApplicationHandler) lifecycleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrProjectNotFound):
		return response.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrNotAuthorized):
		return response.Forbidden(c, "You are not allowed to perform this action")
	case errors.Is(err, services.ErrInvalidTransition):
		return response.UnprocessableEntity(c, "Operation not allowed from the current status")
	default:
		return response.InternalServerError(c, fallback)
	}
}
