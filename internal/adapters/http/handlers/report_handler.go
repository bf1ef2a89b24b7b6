package handlers

import (
	"strconv"
	"strings"

	"github.com/Ekantik19/SC2002-sub000/internal/core/services"
	"github.com/Ekantik19/SC2002-sub000/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles booking report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate builds a filtered applicant report
// @Summary Generate report
// @Description Build an applicant report filtered by project, flat type, marital status, age band and status (manager only)
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project query string false "Project name"
// @Param flat_type query string false "Flat type"
// @Param marital_status query string false "Marital status"
// @Param min_age query int false "Minimum age (inclusive)"
// @Param max_age query int false "Maximum age (inclusive)"
// @Param status query string false "Application status"
// @Success 200 {object} response.Response
// @Router /reports/applications [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	minAge, _ := strconv.Atoi(c.Query("min_age", "0"))
	maxAge, _ := strconv.Atoi(c.Query("max_age", "0"))

	filter := &services.ReportFilter{
		ProjectName:   strings.TrimSpace(c.Query("project")),
		FlatType:      strings.TrimSpace(c.Query("flat_type")),
		MaritalStatus: strings.ToUpper(strings.TrimSpace(c.Query("marital_status"))),
		MinAge:        minAge,
		MaxAge:        maxAge,
		Status:        strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}

	report, err := h.reportService.Generate(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate report")
	}

	return response.Success(c, "Report generated successfully", fiber.Map{
		"report": report,
	})
}
