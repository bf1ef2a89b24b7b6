package repositories

import (
	"context"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project with its flat stock rows
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID gets a project by ID with flats and manager preloaded
func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Flats").
		Preload("Manager").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByName gets a project by its unique name
func (r *projectRepository) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Flats").
		Where("name = ?", name).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("Flats", "Manager").Save(project).Error
}

// Delete soft deletes a project
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}

// List lists projects with pagination
func (r *projectRepository) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Flats").
		Preload("Manager").
		Offset(offset).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListVisible lists all visible projects
func (r *projectRepository) ListVisible(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Flats").
		Where("visible = ?", true).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByManager lists projects owned by a manager
func (r *projectRepository) ListByManager(ctx context.Context, managerID uint) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("Flats").
		Where("manager_id = ?", managerID).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// ListVisibleClosedBefore lists visible projects whose window closed before t
func (r *projectRepository) ListVisibleClosedBefore(ctx context.Context, t time.Time) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("visible = ?", true).
		Where("close_date < ?", t).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// HasOverlappingWindow checks whether the manager already owns a project whose
// application window overlaps [open, close]. excludeID skips the project being
// edited.
func (r *projectRepository) HasOverlappingWindow(ctx context.Context, managerID uint, open, close time.Time, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("manager_id = ?", managerID).
		Where("open_date <= ? AND close_date >= ?", close, open)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// CountApplications counts applications referencing a project
func (r *projectRepository) CountApplications(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// GetFlat gets the stock row for one flat type of a project
func (r *projectRepository) GetFlat(ctx context.Context, projectID uint, flatType string) (*models.ProjectFlat, error) {
	var flat models.ProjectFlat
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND flat_type = ?", projectID, flatType).
		First(&flat).Error
	if err != nil {
		return nil, err
	}
	return &flat, nil
}

// UpdateFlat updates a flat stock row
func (r *projectRepository) UpdateFlat(ctx context.Context, flat *models.ProjectFlat) error {
	return r.db.WithContext(ctx).Save(flat).Error
}

// CreateFlat creates a flat stock row
func (r *projectRepository) CreateFlat(ctx context.Context, flat *models.ProjectFlat) error {
	return r.db.WithContext(ctx).Create(flat).Error
}
