package repositories

import (
	"context"
	"errors"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// registrationRepository implements RegistrationRepository interface
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create creates a new registration
func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

// GetByID gets a registration by ID with officer and project preloaded
func (r *registrationRepository) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Preload("Officer").
		Preload("Project").
		Where("id = ?", id).
		First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// Update updates a registration
func (r *registrationRepository) Update(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Omit("Officer", "Project").Save(registration).Error
}

// GetActiveByOfficer gets the officer's non-rejected registration.
// Returns nil without error when there is none.
func (r *registrationRepository) GetActiveByOfficer(ctx context.Context, officerID uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("officer_id = ?", officerID).
		Where("status <> ?", models.RegistrationRejected).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// GetActiveByOfficerAndProject gets the officer's non-rejected registration for
// a project. Returns nil without error when there is none.
func (r *registrationRepository) GetActiveByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Where("officer_id = ? AND project_id = ?", officerID, projectID).
		Where("status <> ?", models.RegistrationRejected).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// GetApprovedByOfficerAndProject gets the officer's APPROVED registration for a
// project. Returns nil without error when there is none.
func (r *registrationRepository) GetApprovedByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Where("officer_id = ? AND project_id = ?", officerID, projectID).
		Where("status = ?", models.RegistrationApproved).
		First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &registration, nil
}

// CountApproved counts approved registrations for a project (consumed slots)
func (r *registrationRepository) CountApproved(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("project_id = ?", projectID).
		Where("status = ?", models.RegistrationApproved).
		Count(&count).Error
	return count, err
}

// ListByOfficer lists registrations submitted by an officer
func (r *registrationRepository) ListByOfficer(ctx context.Context, officerID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("officer_id = ?", officerID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}

// ListByProject lists registrations for a project
func (r *registrationRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Registration, error) {
	var registrations []*models.Registration
	err := r.db.WithContext(ctx).
		Preload("Officer").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}
	return registrations, nil
}
