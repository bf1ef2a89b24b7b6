package repositories

import (
	"context"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByNRIC(ctx context.Context, nric string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByNRIC(ctx context.Context, nric string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// ProjectRepository defines project repository interface.
// Flat stock rows belong to the project aggregate and are accessed here.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByName(ctx context.Context, name string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error)
	ListVisible(ctx context.Context) ([]*models.Project, error)
	ListByManager(ctx context.Context, managerID uint) ([]*models.Project, error)
	ListVisibleClosedBefore(ctx context.Context, t time.Time) ([]*models.Project, error)
	HasOverlappingWindow(ctx context.Context, managerID uint, open, close time.Time, excludeID uint) (bool, error)
	CountApplications(ctx context.Context, projectID uint) (int64, error)
	GetFlat(ctx context.Context, projectID uint, flatType string) (*models.ProjectFlat, error)
	UpdateFlat(ctx context.Context, flat *models.ProjectFlat) error
	CreateFlat(ctx context.Context, flat *models.ProjectFlat) error
}

// ApplicationRepository defines application repository interface
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	GetActiveByApplicant(ctx context.Context, applicantID uint) (*models.Application, error)
	GetActiveByApplicantAndProject(ctx context.Context, applicantID, projectID uint) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uint) ([]*models.Application, error)
	ListByProject(ctx context.Context, projectID uint, offset, limit int) ([]*models.Application, int64, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
}

// RegistrationRepository defines officer registration repository interface
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id uint) (*models.Registration, error)
	Update(ctx context.Context, registration *models.Registration) error
	GetActiveByOfficer(ctx context.Context, officerID uint) (*models.Registration, error)
	GetActiveByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error)
	GetApprovedByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error)
	CountApproved(ctx context.Context, projectID uint) (int64, error)
	ListByOfficer(ctx context.Context, officerID uint) ([]*models.Registration, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Registration, error)
}

// EnquiryRepository defines enquiry repository interface
type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uint) (*models.Enquiry, error)
	Update(ctx context.Context, enquiry *models.Enquiry) error
	Delete(ctx context.Context, id uint) error
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Enquiry, error)
	ListByProject(ctx context.Context, projectID uint) ([]*models.Enquiry, error)
	List(ctx context.Context, offset, limit int) ([]*models.Enquiry, int64, error)
}
