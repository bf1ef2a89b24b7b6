package repositories

import (
	"context"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// enquiryRepository implements EnquiryRepository interface
type enquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository creates a new enquiry repository
func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

// Create creates a new enquiry
func (r *enquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

// GetByID gets an enquiry by ID with author and project preloaded
func (r *enquiryRepository) GetByID(ctx context.Context, id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Project").
		Where("id = ?", id).
		First(&enquiry).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// Update updates an enquiry
func (r *enquiryRepository) Update(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Omit("Author", "Project").Save(enquiry).Error
}

// Delete deletes an enquiry
func (r *enquiryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Enquiry{}, id).Error
}

// ListByAuthor lists enquiries written by a user
func (r *enquiryRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Enquiry, error) {
	var enquiries []*models.Enquiry
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

// ListByProject lists enquiries about a project
func (r *enquiryRepository) ListByProject(ctx context.Context, projectID uint) ([]*models.Enquiry, error) {
	var enquiries []*models.Enquiry
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	return enquiries, nil
}

// List lists all enquiries with pagination
func (r *enquiryRepository) List(ctx context.Context, offset, limit int) ([]*models.Enquiry, int64, error) {
	var enquiries []*models.Enquiry
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Enquiry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Project").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&enquiries).Error; err != nil {
		return nil, 0, err
	}

	return enquiries, total, nil
}
