package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
)

// Inventory errors
var (
	ErrNoInventory        = errors.New("no remaining units of the requested flat type")
	ErrNoSlots            = errors.New("no remaining officer slots for this project")
	ErrFlatTypeNotOffered = errors.New("project does not offer the requested flat type")
)

// InventoryService owns every mutation of flat unit counts and officer slot
// consumption. No other service writes these. Each project has its own lock
// so unrelated projects never serialize against each other.
type InventoryService struct {
	projectRepo      repositories.ProjectRepository
	registrationRepo repositories.RegistrationRepository

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	projectRepo repositories.ProjectRepository,
	registrationRepo repositories.RegistrationRepository,
) *InventoryService {
	return &InventoryService{
		projectRepo:      projectRepo,
		registrationRepo: registrationRepo,
		locks:            make(map[uint]*sync.Mutex),
	}
}

// LockProject enters the project's exclusive section and returns the unlock
// function. Every transition that checks and then mutates project inventory
// (booking, withdrawal reversal, slot approval) runs under this lock.
func (s *InventoryService) LockProject(projectID uint) func() {
	s.mu.Lock()
	l, ok := s.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[projectID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Available returns the remaining unit count for one flat type
func (s *InventoryService) Available(ctx context.Context, projectID uint, flatType string) (int, error) {
	flat, err := s.projectRepo.GetFlat(ctx, projectID, flatType)
	if err != nil {
		return 0, ErrFlatTypeNotOffered
	}
	return flat.AvailableUnits, nil
}

// Decrement takes one unit of the flat type. Fails with ErrNoInventory when
// the count is already zero; the count never goes negative. The caller must
// hold the project lock.
func (s *InventoryService) Decrement(ctx context.Context, projectID uint, flatType string) error {
	flat, err := s.projectRepo.GetFlat(ctx, projectID, flatType)
	if err != nil {
		return ErrFlatTypeNotOffered
	}

	if flat.AvailableUnits <= 0 {
		return ErrNoInventory
	}

	flat.AvailableUnits--
	if err := s.projectRepo.UpdateFlat(ctx, flat); err != nil {
		return err
	}

	log.Printf("Inventory: project %d %s -> %d units", projectID, flatType, flat.AvailableUnits)
	return nil
}

// Increment returns one unit of the flat type to the pool. Used only by
// withdrawal-approval reversal. There is no upper clamp; the count may
// exceed TotalUnits if stock was adjusted downward in between. The caller
// must hold the project lock.
func (s *InventoryService) Increment(ctx context.Context, projectID uint, flatType string) error {
	flat, err := s.projectRepo.GetFlat(ctx, projectID, flatType)
	if err != nil {
		return ErrFlatTypeNotOffered
	}

	flat.AvailableUnits++
	if err := s.projectRepo.UpdateFlat(ctx, flat); err != nil {
		return err
	}

	log.Printf("Inventory: project %d %s -> %d units (returned)", projectID, flatType, flat.AvailableUnits)
	return nil
}

// RemainingOfficerSlots returns how many officer slots the project still has.
// Consumed slots are the APPROVED registrations.
func (s *InventoryService) RemainingOfficerSlots(ctx context.Context, project *models.Project) (int, error) {
	approved, err := s.registrationRepo.CountApproved(ctx, project.ID)
	if err != nil {
		return 0, err
	}

	remaining := project.OfficerSlots - int(approved)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
