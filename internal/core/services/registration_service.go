package services

import (
	"context"
	"errors"
	"log"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
)

// Registration errors
var (
	ErrRegistrationNotFound     = errors.New("registration not found")
	ErrAlreadyRegistered        = errors.New("officer already has an active registration")
	ErrConflictingApplicantRole = errors.New("cannot hold both applicant and officer roles for the same project")
)

// RegistrationService manages officer registration for projects: a bounded
// mini lifecycle (PENDING -> APPROVED | REJECTED) whose approval consumes
// one of the project's officer slots.
type RegistrationService struct {
	registrationRepo repositories.RegistrationRepository
	applicationRepo  repositories.ApplicationRepository
	projectRepo      repositories.ProjectRepository
	userRepo         repositories.UserRepository
	inventory        *InventoryService
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	applicationRepo repositories.ApplicationRepository,
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	inventory *InventoryService,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		applicationRepo:  applicationRepo,
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		inventory:        inventory,
	}
}

// Register creates a PENDING registration for the officer on the project.
func (s *RegistrationService) Register(ctx context.Context, officerID, projectID uint) (*models.Registration, error) {
	officer, err := s.userRepo.GetByID(ctx, officerID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if officer.Role != models.RoleOfficer {
		return nil, ErrNotAuthorized
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	existing, err := s.registrationRepo.GetActiveByOfficer(ctx, officerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	// An officer with a live application for this project cannot also
	// administer it.
	application, err := s.applicationRepo.GetActiveByApplicantAndProject(ctx, officerID, projectID)
	if err != nil {
		return nil, err
	}
	if application != nil {
		return nil, ErrConflictingApplicantRole
	}

	remaining, err := s.inventory.RemainingOfficerSlots(ctx, project)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		return nil, ErrNoSlots
	}

	registration := &models.Registration{
		OfficerID: officerID,
		ProjectID: projectID,
		Status:    models.RegistrationPending,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}

	log.Printf("Registration %d created: officer %d, project %s", registration.ID, officerID, project.Name)
	return registration, nil
}

// Approve marks the registration APPROVED and consumes an officer slot.
// Restricted to the project's owning manager. The slot check and the status
// flip run under the project lock so the slot bound cannot be exceeded.
func (s *RegistrationService) Approve(ctx context.Context, registrationID, managerID uint) (*models.Registration, error) {
	registration, err := s.get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if registration.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if registration.Status != models.RegistrationPending {
		return nil, ErrInvalidTransition
	}

	unlock := s.inventory.LockProject(registration.ProjectID)
	defer unlock()

	remaining, err := s.inventory.RemainingOfficerSlots(ctx, registration.Project)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		return nil, ErrNoSlots
	}

	registration.Status = models.RegistrationApproved
	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, err
	}

	log.Printf("Registration %d approved by manager %d", registrationID, managerID)
	return registration, nil
}

// Reject marks the registration REJECTED. Restricted to the project's
// owning manager.
func (s *RegistrationService) Reject(ctx context.Context, registrationID, managerID uint) (*models.Registration, error) {
	registration, err := s.get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if registration.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if registration.Status != models.RegistrationPending {
		return nil, ErrInvalidTransition
	}

	registration.Status = models.RegistrationRejected
	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		return nil, err
	}

	log.Printf("Registration %d rejected by manager %d", registrationID, managerID)
	return registration, nil
}

// GetMyRegistrations lists the officer's registrations
func (s *RegistrationService) GetMyRegistrations(ctx context.Context, officerID uint) ([]*models.Registration, error) {
	return s.registrationRepo.ListByOfficer(ctx, officerID)
}

// ListByProject lists a project's registrations. Restricted to the owning
// manager.
func (s *RegistrationService) ListByProject(ctx context.Context, projectID, managerID uint) ([]*models.Registration, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	return s.registrationRepo.ListByProject(ctx, projectID)
}

// IsApprovedFor reports whether the officer holds an APPROVED registration
// for the project. Used by enquiry authorization.
func (s *RegistrationService) IsApprovedFor(ctx context.Context, officerID, projectID uint) (bool, error) {
	registration, err := s.registrationRepo.GetApprovedByOfficerAndProject(ctx, officerID, projectID)
	if err != nil {
		return false, err
	}
	return registration != nil, nil
}

func (s *RegistrationService) get(ctx context.Context, registrationID uint) (*models.Registration, error) {
	registration, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, ErrRegistrationNotFound
	}
	if registration.Project == nil {
		return nil, ErrRegistrationNotFound
	}
	return registration, nil
}
