package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
)

// Enquiry errors
var (
	ErrEnquiryNotFound        = errors.New("enquiry not found")
	ErrEnquiryAlreadyAnswered = errors.New("enquiry has already been answered")
)

// EnquiryService handles project enquiries. Authors may edit or delete an
// enquiry while it is unanswered; replies come from the owning manager or
// an officer approved for the project.
type EnquiryService struct {
	enquiryRepo  repositories.EnquiryRepository
	projectRepo  repositories.ProjectRepository
	registration *RegistrationService
}

// NewEnquiryService creates a new enquiry service
func NewEnquiryService(
	enquiryRepo repositories.EnquiryRepository,
	projectRepo repositories.ProjectRepository,
	registration *RegistrationService,
) *EnquiryService {
	return &EnquiryService{
		enquiryRepo:  enquiryRepo,
		projectRepo:  projectRepo,
		registration: registration,
	}
}

// SubmitEnquiryInput represents enquiry submission input
type SubmitEnquiryInput struct {
	ProjectID uint   `json:"project_id" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// Submit creates an enquiry about a project
func (s *EnquiryService) Submit(ctx context.Context, authorID uint, input *SubmitEnquiryInput) (*models.Enquiry, error) {
	if _, err := s.projectRepo.GetByID(ctx, input.ProjectID); err != nil {
		return nil, ErrProjectNotFound
	}

	enquiry := &models.Enquiry{
		AuthorID:  authorID,
		ProjectID: input.ProjectID,
		Content:   input.Content,
	}

	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, err
	}

	log.Printf("Enquiry %d submitted for project %d", enquiry.ID, input.ProjectID)
	return enquiry, nil
}

// Edit updates the enquiry text. Author only, and only while unanswered.
func (s *EnquiryService) Edit(ctx context.Context, enquiryID, authorID uint, content string) (*models.Enquiry, error) {
	enquiry, err := s.get(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	if enquiry.AuthorID != authorID {
		return nil, ErrNotAuthorized
	}
	if enquiry.IsAnswered() {
		return nil, ErrEnquiryAlreadyAnswered
	}

	enquiry.Content = content
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

// Delete removes the enquiry. Author only, and only while unanswered.
func (s *EnquiryService) Delete(ctx context.Context, enquiryID, authorID uint) error {
	enquiry, err := s.get(ctx, enquiryID)
	if err != nil {
		return err
	}

	if enquiry.AuthorID != authorID {
		return ErrNotAuthorized
	}
	if enquiry.IsAnswered() {
		return ErrEnquiryAlreadyAnswered
	}

	return s.enquiryRepo.Delete(ctx, enquiryID)
}

// Reply answers the enquiry. The staff actor must be the project's owning
// manager or an officer approved for the project.
func (s *EnquiryService) Reply(ctx context.Context, enquiryID, staffID uint, reply string) (*models.Enquiry, error) {
	enquiry, err := s.get(ctx, enquiryID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, enquiry.ProjectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	if project.ManagerID != staffID {
		approved, err := s.registration.IsApprovedFor(ctx, staffID, enquiry.ProjectID)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, ErrNotAuthorized
		}
	}

	now := time.Now()
	enquiry.Reply = &reply
	enquiry.RepliedBy = &staffID
	enquiry.RepliedAt = &now
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, err
	}

	log.Printf("Enquiry %d answered by user %d", enquiryID, staffID)
	return enquiry, nil
}

// GetMyEnquiries lists the caller's enquiries
func (s *EnquiryService) GetMyEnquiries(ctx context.Context, authorID uint) ([]*models.Enquiry, error) {
	return s.enquiryRepo.ListByAuthor(ctx, authorID)
}

// ListByProject lists a project's enquiries
func (s *EnquiryService) ListByProject(ctx context.Context, projectID uint) ([]*models.Enquiry, error) {
	return s.enquiryRepo.ListByProject(ctx, projectID)
}

// List lists all enquiries with pagination (staff view)
func (s *EnquiryService) List(ctx context.Context, offset, limit int) ([]*models.Enquiry, int64, error) {
	return s.enquiryRepo.List(ctx, offset, limit)
}

func (s *EnquiryService) get(ctx context.Context, enquiryID uint) (*models.Enquiry, error) {
	enquiry, err := s.enquiryRepo.GetByID(ctx, enquiryID)
	if err != nil {
		return nil, ErrEnquiryNotFound
	}
	return enquiry, nil
}
