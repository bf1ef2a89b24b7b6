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

// Project errors
var (
	ErrProjectNameTaken       = errors.New("project name already in use")
	ErrOverlappingWindow      = errors.New("manager already runs a project in this application period")
	ErrProjectHasApplications = errors.New("project has applications and cannot be changed this way")
	ErrInvalidWindow          = errors.New("invalid application window")
	ErrInvalidOfficerSlots    = errors.New("officer slots must be between 1 and 10")
)

// MaxOfficerSlots caps the officer slot capacity of one project
const MaxOfficerSlots = 10

// ProjectService manages BTO projects: manager CRUD, visibility, and the
// listing rules applicants see.
type ProjectService struct {
	projectRepo     repositories.ProjectRepository
	applicationRepo repositories.ApplicationRepository
	registrationRepo repositories.RegistrationRepository
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	applicationRepo repositories.ApplicationRepository,
	registrationRepo repositories.RegistrationRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo:      projectRepo,
		applicationRepo:  applicationRepo,
		registrationRepo: registrationRepo,
	}
}

// FlatInput represents one flat type's stock for project creation
type FlatInput struct {
	FlatType     string  `json:"flat_type" validate:"required"`
	Units        int     `json:"units" validate:"required,gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"required,gte=0"`
}

// CreateProjectInput represents project creation input
type CreateProjectInput struct {
	Name         string      `json:"name" validate:"required"`
	Neighborhood string      `json:"neighborhood" validate:"required"`
	OpenDate     time.Time   `json:"open_date" validate:"required"`
	CloseDate    time.Time   `json:"close_date" validate:"required"`
	OfficerSlots int         `json:"officer_slots" validate:"required"`
	Flats        []FlatInput `json:"flats" validate:"required"`
}

// Create creates a project owned by the manager. A manager may only run one
// project per application period, so overlapping windows are rejected.
// Projects start hidden until the manager toggles visibility.
func (s *ProjectService) Create(ctx context.Context, managerID uint, input *CreateProjectInput) (*models.Project, error) {
	if input.CloseDate.Before(input.OpenDate) {
		return nil, ErrInvalidWindow
	}
	if input.OfficerSlots < 1 || input.OfficerSlots > MaxOfficerSlots {
		return nil, ErrInvalidOfficerSlots
	}

	if _, err := s.projectRepo.GetByName(ctx, input.Name); err == nil {
		return nil, ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	overlap, err := s.projectRepo.HasOverlappingWindow(ctx, managerID, input.OpenDate, input.CloseDate, 0)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrOverlappingWindow
	}

	project := &models.Project{
		Name:         input.Name,
		Neighborhood: input.Neighborhood,
		OpenDate:     input.OpenDate,
		CloseDate:    input.CloseDate,
		Visible:      false,
		ManagerID:    managerID,
		OfficerSlots: input.OfficerSlots,
	}
	for _, f := range input.Flats {
		project.Flats = append(project.Flats, models.ProjectFlat{
			FlatType:       f.FlatType,
			TotalUnits:     f.Units,
			AvailableUnits: f.Units,
			SellingPrice:   f.SellingPrice,
		})
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("Project %s created by manager %d", project.Name, managerID)
	return project, nil
}

// UpdateProjectInput represents project update input
type UpdateProjectInput struct {
	Neighborhood *string    `json:"neighborhood,omitempty"`
	OpenDate     *time.Time `json:"open_date,omitempty"`
	CloseDate    *time.Time `json:"close_date,omitempty"`
	OfficerSlots *int       `json:"officer_slots,omitempty"`
}

// Update edits a project. Owning manager only. The application window is
// frozen once applications exist.
func (s *ProjectService) Update(ctx context.Context, projectID, managerID uint, input *UpdateProjectInput) (*models.Project, error) {
	project, err := s.getOwned(ctx, projectID, managerID)
	if err != nil {
		return nil, err
	}

	if input.OpenDate != nil || input.CloseDate != nil {
		count, err := s.projectRepo.CountApplications(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrProjectHasApplications
		}

		open := project.OpenDate
		closeDate := project.CloseDate
		if input.OpenDate != nil {
			open = *input.OpenDate
		}
		if input.CloseDate != nil {
			closeDate = *input.CloseDate
		}
		if closeDate.Before(open) {
			return nil, ErrInvalidWindow
		}

		overlap, err := s.projectRepo.HasOverlappingWindow(ctx, managerID, open, closeDate, projectID)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, ErrOverlappingWindow
		}

		project.OpenDate = open
		project.CloseDate = closeDate
	}

	if input.Neighborhood != nil {
		project.Neighborhood = *input.Neighborhood
	}
	if input.OfficerSlots != nil {
		if *input.OfficerSlots < 1 || *input.OfficerSlots > MaxOfficerSlots {
			return nil, ErrInvalidOfficerSlots
		}
		approved, err := s.registrationRepo.CountApproved(ctx, projectID)
		if err != nil {
			return nil, err
		}
		if int64(*input.OfficerSlots) < approved {
			return nil, ErrInvalidOfficerSlots
		}
		project.OfficerSlots = *input.OfficerSlots
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project. Owning manager only; blocked while applications
// reference it.
func (s *ProjectService) Delete(ctx context.Context, projectID, managerID uint) error {
	if _, err := s.getOwned(ctx, projectID, managerID); err != nil {
		return err
	}

	count, err := s.projectRepo.CountApplications(ctx, projectID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProjectHasApplications
	}

	return s.projectRepo.Delete(ctx, projectID)
}

// SetVisibility toggles applicant-facing listing. Owning manager only.
func (s *ProjectService) SetVisibility(ctx context.Context, projectID, managerID uint, visible bool) (*models.Project, error) {
	project, err := s.getOwned(ctx, projectID, managerID)
	if err != nil {
		return nil, err
	}

	project.Visible = visible
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("Project %s visibility set to %t", project.Name, visible)
	return project, nil
}

// ListForUser lists the projects the user may see. Applicants and officers
// see visible projects plus any hidden project they hold an application or
// registration to; managers see all projects.
func (s *ProjectService) ListForUser(ctx context.Context, user *models.User) ([]*models.Project, error) {
	if user.Role == models.RoleManager {
		projects, _, err := s.projectRepo.List(ctx, 0, pagingAll)
		return projects, err
	}

	projects, err := s.projectRepo.ListVisible(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(projects))
	for _, p := range projects {
		seen[p.ID] = true
	}

	// A hidden project stays visible to an applicant with an existing
	// application to it.
	application, err := s.applicationRepo.GetActiveByApplicant(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if application != nil && !seen[application.ProjectID] {
		if p, err := s.projectRepo.GetByID(ctx, application.ProjectID); err == nil {
			projects = append(projects, p)
			seen[p.ID] = true
		}
	}

	if user.Role == models.RoleOfficer {
		registration, err := s.registrationRepo.GetActiveByOfficer(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if registration != nil && !seen[registration.ProjectID] {
			if p, err := s.projectRepo.GetByID(ctx, registration.ProjectID); err == nil {
				projects = append(projects, p)
			}
		}
	}

	return projects, nil
}

// GetMyProjects lists the manager's own projects
func (s *ProjectService) GetMyProjects(ctx context.Context, managerID uint) ([]*models.Project, error) {
	return s.projectRepo.ListByManager(ctx, managerID)
}

// GetByID gets a project by ID
func (s *ProjectService) GetByID(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) getOwned(ctx context.Context, projectID, managerID uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if project.ManagerID != managerID {
		return nil, ErrNotAuthorized
	}
	return project, nil
}

// pagingAll is a large enough page for unpaginated manager listings
const pagingAll = 1000
