package handlers

import (
	"errors"
	"strings"

	"github.com/Ekantik19/SC2002-sub000/internal/core/services"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/pagination"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EnquiryHandler handles enquiry endpoints
type EnquiryHandler struct {
	enquiryService *services.EnquiryService
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(enquiryService *services.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService}
}

// SubmitEnquiryRequest represents enquiry submission request body
type SubmitEnquiryRequest struct {
	ProjectID uint   `json:"project_id"`
	Content   string `json:"content"`
}

// EditEnquiryRequest represents enquiry edit request body
type EditEnquiryRequest struct {
	Content string `json:"content"`
}

// ReplyEnquiryRequest represents enquiry reply request body
type ReplyEnquiryRequest struct {
	Reply string `json:"reply"`
}

// Submit handles enquiry submission
// @Summary Submit enquiry
// @Description Submit a question about a project
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitEnquiryRequest true "Enquiry data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /enquiries [post]
func (h *EnquiryHandler) Submit(c *fiber.Ctx) error {
	authorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SubmitEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ProjectID == 0 {
		return response.BadRequest(c, "Project ID is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return response.BadRequest(c, "Content is required")
	}

	input := &services.SubmitEnquiryInput{
		ProjectID: req.ProjectID,
		Content:   strings.TrimSpace(req.Content),
	}

	enquiry, err := h.enquiryService.Submit(c.Context(), authorID, input)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return response.NotFound(c, "Project not found")
		}
		return response.InternalServerError(c, "Failed to submit enquiry")
	}

	return response.Created(c, "Enquiry submitted successfully", fiber.Map{
		"enquiry": enquiry,
	})
}

// Mine lists the caller's enquiries
// @Summary My enquiries
// @Description List enquiries submitted by the caller
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /enquiries/mine [get]
func (h *EnquiryHandler) Mine(c *fiber.Ctx) error {
	authorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	enquiries, err := h.enquiryService.GetMyEnquiries(c.Context(), authorID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	return response.Success(c, "Enquiries retrieved successfully", fiber.Map{
		"enquiries": enquiries,
	})
}

// List lists all enquiries
// @Summary List enquiries
// @Description List all enquiries (manager only)
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Router /enquiries [get]
func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	enquiries, total, err := h.enquiryService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	return c.JSON(pagination.NewResponse(enquiries, params, total))
}

// ListByProject lists enquiries about one project
// @Summary List project enquiries
// @Description List enquiries about a project
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} response.Response
// @Router /projects/{id}/enquiries [get]
func (h *EnquiryHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil || projectID <= 0 {
		return response.BadRequest(c, "Invalid project ID")
	}

	enquiries, err := h.enquiryService.ListByProject(c.Context(), uint(projectID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list enquiries")
	}

	return response.Success(c, "Enquiries retrieved successfully", fiber.Map{
		"enquiries": enquiries,
	})
}

// Edit handles enquiry editing
// @Summary Edit enquiry
// @Description Edit an unanswered enquiry (author only)
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Param body body EditEnquiryRequest true "New content"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /enquiries/{id} [put]
func (h *EnquiryHandler) Edit(c *fiber.Ctx) error {
	authorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	enquiryID, err := c.ParamsInt("id")
	if err != nil || enquiryID <= 0 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	var req EditEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return response.BadRequest(c, "Content is required")
	}

	enquiry, err := h.enquiryService.Edit(c.Context(), uint(enquiryID), authorID, strings.TrimSpace(req.Content))
	if err != nil {
		return h.enquiryError(c, err, "Failed to edit enquiry")
	}

	return response.Success(c, "Enquiry updated successfully", fiber.Map{
		"enquiry": enquiry,
	})
}

// Delete handles enquiry deletion
// @Summary Delete enquiry
// @Description Delete an unanswered enquiry (author only)
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /enquiries/{id} [delete]
func (h *EnquiryHandler) Delete(c *fiber.Ctx) error {
	authorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	enquiryID, err := c.ParamsInt("id")
	if err != nil || enquiryID <= 0 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	if err := h.enquiryService.Delete(c.Context(), uint(enquiryID), authorID); err != nil {
		return h.enquiryError(c, err, "Failed to delete enquiry")
	}

	return response.Success(c, "Enquiry deleted successfully", nil)
}

// Reply handles enquiry replies
// @Summary Reply to enquiry
// @Description Answer an enquiry (owning manager or approved officer)
// @Tags Enquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enquiry ID"
// @Param body body ReplyEnquiryRequest true "Reply text"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /enquiries/{id}/reply [post]
func (h *EnquiryHandler) Reply(c *fiber.Ctx) error {
	staffID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	enquiryID, err := c.ParamsInt("id")
	if err != nil || enquiryID <= 0 {
		return response.BadRequest(c, "Invalid enquiry ID")
	}

	var req ReplyEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Reply) == "" {
		return response.BadRequest(c, "Reply is required")
	}

	enquiry, err := h.enquiryService.Reply(c.Context(), uint(enquiryID), staffID, strings.TrimSpace(req.Reply))
	if err != nil {
		return h.enquiryError(c, err, "Failed to reply to enquiry")
	}

	return response.Success(c, "Reply posted successfully", fiber.Map{
		"enquiry": enquiry,
	})
}

// enquiryError maps enquiry errors to HTTP responses
func (h *EnquiryHandler) enquiryError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEnquiryNotFound):
		return response.NotFound(c, "Enquiry not found")
	case errors.Is(err, services.ErrNotAuthorized):
		return response.Forbidden(c, "You are not allowed to modify this enquiry")
	case errors.Is(err, services.ErrEnquiryAlreadyAnswered):
		return response.UnprocessableEntity(c, "Enquiry has already been answered")
	default:
		return response.InternalServerError(c, fallback)
	}
}
