package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Application errors
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrDuplicateApplication = errors.New("applicant already has an active application")
	ErrWindowClosed         = errors.New("project application window is closed")
	ErrNotEligible          = errors.New("applicant is not eligible for the requested flat type")
	ErrInvalidTransition    = errors.New("operation not allowed from the current status")
	ErrNotAuthorized        = errors.New("not authorized")
)

// ApplicationService governs the application lifecycle:
//
//	PENDING --approve--> SUCCESSFUL --book--> BOOKED
//	PENDING --reject--> UNSUCCESSFUL
//	SUCCESSFUL --reject--> UNSUCCESSFUL
//
// Approval does not reserve a unit; inventory is decremented at booking time
// so approved-but-never-booked applications cannot starve the pool.
type ApplicationService struct {
	applicationRepo  repositories.ApplicationRepository
	projectRepo      repositories.ProjectRepository
	userRepo         repositories.UserRepository
	registrationRepo repositories.RegistrationRepository
	eligibility      *EligibilityService
	inventory        *InventoryService
}

// NewApplicationService creates a new application service
func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	registrationRepo repositories.RegistrationRepository,
	eligibility *EligibilityService,
	inventory *InventoryService,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo:  applicationRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		eligibility:      eligibility,
		inventory:        inventory,
	}
}

// SubmitInput represents application submission input
type SubmitInput struct {
	ProjectID uint   `json:"project_id" validate:"required"`
	FlatType  string `json:"flat_type" validate:"required"`
}

// Submit creates a PENDING application. Inventory is not touched yet.
func (s *ApplicationService) Submit(ctx context.Context, applicantID uint, input *SubmitInput) (*models.Application, error) {
	applicant, err := s.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !applicant.CanApply() {
		return nil, ErrNotAuthorized
	}

	project, err := s.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	// Hidden projects are not open for new applications.
	if !project.Visible {
		return nil, ErrProjectNotFound
	}

	if !project.IsOpenAt(time.Now()) {
		return nil, ErrWindowClosed
	}

	existing, err := s.applicationRepo.GetActiveByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateApplication
	}

	// An officer cannot apply to a project they are registered to handle.
	if applicant.Role == models.RoleOfficer {
		reg, err := s.registrationRepo.GetActiveByOfficerAndProject(ctx, applicantID, project.ID)
		if err != nil {
			return nil, err
		}
		if reg != nil {
			return nil, ErrConflictingApplicantRole
		}
	}

	if !s.eligibility.IsEligible(applicant.Age, applicant.MaritalStatus, input.FlatType) {
		return nil, ErrNotEligible
	}

	if !project.OffersFlatType(input.FlatType) {
		return nil, ErrFlatTypeNotOffered
	}
	available, err := s.inventory.Available(ctx, project.ID, input.FlatType)
	if err != nil {
		return nil, err
	}
	if available == 0 {
		return nil, ErrNoInventory
	}

	application := &models.Application{
		ApplicantID: applicantID,
		ProjectID:   project.ID,
		FlatType:    input.FlatType,
		Status:      models.ApplicationPending,
		SubmittedAt: time.Now(),
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Application %d submitted: applicant %d, project %s, %s",
		application.ID, applicantID, project.Name, input.FlatType)

	return application, nil
}

// Approve moves a PENDING application to SUCCESSFUL. Restricted to the
// project's owning manager. Eligibility and stock are re-checked because
// project data may have changed since submission; no unit is reserved here.
func (s *ApplicationService) Approve(ctx context.Context, applicationID, managerID uint) (*models.Application, error) {
	application, err := s.getWithProject(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if application.Status != models.ApplicationPending {
		return nil, ErrInvalidTransition
	}

	if !s.eligibility.IsEligible(application.Applicant.Age, application.Applicant.MaritalStatus, application.FlatType) {
		return nil, ErrNotEligible
	}

	available, err := s.inventory.Available(ctx, application.ProjectID, application.FlatType)
	if err != nil {
		return nil, err
	}
	if available == 0 {
		return nil, ErrNoInventory
	}

	application.Status = models.ApplicationSuccessful
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Application %d approved by manager %d", applicationID, managerID)
	return application, nil
}

// Reject moves a PENDING or SUCCESSFUL application to UNSUCCESSFUL.
// Restricted to the project's owning manager.
func (s *ApplicationService) Reject(ctx context.Context, applicationID, managerID uint) (*models.Application, error) {
	application, err := s.getWithProject(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if application.Status != models.ApplicationPending && application.Status != models.ApplicationSuccessful {
		return nil, ErrInvalidTransition
	}

	application.Status = models.ApplicationUnsuccessful
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Application %d rejected by manager %d", applicationID, managerID)
	return application, nil
}

// BookInput represents booking input
type BookInput struct {
	FlatType string `json:"flat_type,omitempty"`
}

// Book moves a SUCCESSFUL application to BOOKED and takes one unit from the
// pool. Restricted to officers approved for the project. Status check,
// decrement, and status change run under the project lock: either both
// happen or neither does.
func (s *ApplicationService) Book(ctx context.Context, applicationID uint, input *BookInput, officerID uint) (*models.Application, error) {
	application, err := s.getWithProject(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	registration, err := s.registrationRepo.GetApprovedByOfficerAndProject(ctx, officerID, application.ProjectID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, ErrNotAuthorized
	}

	flatType := input.FlatType
	if flatType == "" {
		flatType = application.FlatType
	}

	unlock := s.inventory.LockProject(application.ProjectID)
	defer unlock()

	// Re-read inside the exclusive section so no concurrent transition on
	// the same application can interleave.
	application, err = s.getWithProject(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Status != models.ApplicationSuccessful {
		return nil, ErrInvalidTransition
	}

	// Eligibility must still hold at booking time.
	if !s.eligibility.IsEligible(application.Applicant.Age, application.Applicant.MaritalStatus, flatType) {
		return nil, ErrNotEligible
	}

	if err := s.inventory.Decrement(ctx, application.ProjectID, flatType); err != nil {
		return nil, err
	}

	application.Status = models.ApplicationBooked
	application.BookedFlatType = &flatType
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		// Return the unit so a failed persist does not leak stock.
		if incErr := s.inventory.Increment(ctx, application.ProjectID, flatType); incErr != nil {
			log.Printf("Failed to restore unit after booking persist error: %v", incErr)
		}
		return nil, err
	}

	log.Printf("Application %d booked (%s) by officer %d", applicationID, flatType, officerID)
	return application, nil
}

// GetByID gets an application by ID
func (s *ApplicationService) GetByID(ctx context.Context, applicationID uint) (*models.Application, error) {
	return s.getWithProject(ctx, applicationID)
}

// GetMyApplications lists the caller's applications, newest first
func (s *ApplicationService) GetMyApplications(ctx context.Context, applicantID uint) ([]*models.Application, error) {
	return s.applicationRepo.ListByApplicant(ctx, applicantID)
}

// ListByProject lists a project's applications. Restricted to the owning
// manager and approved officers of the project.
func (s *ApplicationService) ListByProject(ctx context.Context, projectID, staffID uint, offset, limit int) ([]*models.Application, int64, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, 0, ErrProjectNotFound
	}

	if project.ManagerID != staffID {
		registration, err := s.registrationRepo.GetApprovedByOfficerAndProject(ctx, staffID, projectID)
		if err != nil {
			return nil, 0, err
		}
		if registration == nil {
			return nil, 0, ErrNotAuthorized
		}
	}

	return s.applicationRepo.ListByProject(ctx, projectID, offset, limit)
}

func (s *ApplicationService) getWithProject(ctx context.Context, applicationID uint) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if application.Project == nil || application.Applicant == nil {
		return nil, ErrApplicationNotFound
	}
	return application, nil
}
