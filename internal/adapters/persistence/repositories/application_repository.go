package repositories

import (
	"context"
	"errors"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application
func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// GetByID gets an application by ID with applicant and project preloaded
func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Project").
		Preload("Project.Flats").
		Where("id = ?", id).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// Update updates an application
func (r *applicationRepository) Update(ctx context.Context, application *models.Application) error {
	return r.db.WithContext(ctx).Omit("Applicant", "Project").Save(application).Error
}

// GetActiveByApplicant gets the applicant's non-terminal application.
// Returns nil without error when there is none.
func (r *applicationRepository) GetActiveByApplicant(ctx context.Context, applicantID uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("applicant_id = ?", applicantID).
		Where("status <> ?", models.ApplicationUnsuccessful).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetActiveByApplicantAndProject gets the applicant's non-terminal application
// for a specific project. Returns nil without error when there is none.
func (r *applicationRepository) GetActiveByApplicantAndProject(ctx context.Context, applicantID, projectID uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ? AND project_id = ?", applicantID, projectID).
		Where("status <> ?", models.ApplicationUnsuccessful).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// ListByApplicant lists all applications of one applicant, newest first
func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uint) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("applicant_id = ?", applicantID).
		Order("submitted_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ListByProject lists applications for a project with pagination
func (r *applicationRepository) ListByProject(ctx context.Context, projectID uint, offset, limit int) ([]*models.Application, int64, error) {
	var applications []*models.Application
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Project").
		Where("project_id = ?", projectID).
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&applications).Error; err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// ListAll lists every application with relations preloaded (report input)
func (r *applicationRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	var applications []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Project").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}
