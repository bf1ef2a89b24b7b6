package services

import (
	"context"
	"errors"
	"log"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
)

// Withdrawal errors
var (
	ErrNoWithdrawalRequest = errors.New("no withdrawal has been requested for this application")
)

// WithdrawalService arbitrates applicant-initiated withdrawal requests.
// Approval is a terminal exit: the application is forced to UNSUCCESSFUL
// regardless of its prior status, and a booked unit goes back to the pool.
type WithdrawalService struct {
	applicationRepo repositories.ApplicationRepository
	inventory       *InventoryService
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(
	applicationRepo repositories.ApplicationRepository,
	inventory *InventoryService,
) *WithdrawalService {
	return &WithdrawalService{
		applicationRepo: applicationRepo,
		inventory:       inventory,
	}
}

// Request flags the application for withdrawal. Allowed from any status
// except UNSUCCESSFUL. Idempotent when the flag is already set.
func (s *WithdrawalService) Request(ctx context.Context, applicationID, applicantID uint) (*models.Application, error) {
	application, err := s.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.ApplicantID != applicantID {
		return nil, ErrNotAuthorized
	}

	if application.Status == models.ApplicationUnsuccessful {
		return nil, ErrInvalidTransition
	}

	if application.WithdrawalRequested {
		return application, nil
	}

	application.WithdrawalRequested = true
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Withdrawal requested for application %d", applicationID)
	return application, nil
}

// Approve grants the withdrawal. A booked unit is returned to the pool
// before the status flips; both happen under the project lock. The
// application ends UNSUCCESSFUL, which frees the applicant to apply again.
func (s *WithdrawalService) Approve(ctx context.Context, applicationID, managerID uint) (*models.Application, error) {
	application, err := s.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if !application.WithdrawalRequested {
		return nil, ErrNoWithdrawalRequest
	}

	unlock := s.inventory.LockProject(application.ProjectID)
	defer unlock()

	application, err = s.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !application.WithdrawalRequested {
		return nil, ErrNoWithdrawalRequest
	}

	if application.Status == models.ApplicationBooked && application.BookedFlatType != nil {
		if err := s.inventory.Increment(ctx, application.ProjectID, *application.BookedFlatType); err != nil {
			return nil, err
		}
	}

	application.Status = models.ApplicationUnsuccessful
	application.BookedFlatType = nil
	application.WithdrawalRequested = false
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Withdrawal approved for application %d by manager %d", applicationID, managerID)
	return application, nil
}

// Reject denies the withdrawal: the flag is cleared and the application
// keeps its current status.
func (s *WithdrawalService) Reject(ctx context.Context, applicationID, managerID uint) (*models.Application, error) {
	application, err := s.get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if application.Project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}

	if !application.WithdrawalRequested {
		return nil, ErrNoWithdrawalRequest
	}

	application.WithdrawalRequested = false
	if err := s.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	log.Printf("Withdrawal rejected for application %d by manager %d", applicationID, managerID)
	return application, nil
}

func (s *WithdrawalService) get(ctx context.Context, applicationID uint) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}
	if application.Project == nil {
		return nil, ErrApplicationNotFound
	}
	return application, nil
}
