package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Enumerations
// ============================================================

// User roles
const (
	RoleApplicant = "APPLICANT"
	RoleOfficer   = "OFFICER"
	RoleManager   = "MANAGER"
)

// Marital status
const (
	MaritalSingle  = "SINGLE"
	MaritalMarried = "MARRIED"
)

// Flat types
const (
	FlatTypeTwoRoom   = "2-Room"
	FlatTypeThreeRoom = "3-Room"
)

// Application status
const (
	ApplicationPending      = "PENDING"
	ApplicationSuccessful   = "SUCCESSFUL"
	ApplicationUnsuccessful = "UNSUCCESSFUL"
	ApplicationBooked       = "BOOKED"
)

// Registration status
const (
	RegistrationPending  = "PENDING"
	RegistrationApproved = "APPROVED"
	RegistrationRejected = "REJECTED"
)

// ============================================================
// Users & Auth
// ============================================================

// User represents the users table
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	NRIC          string         `gorm:"uniqueIndex;size:9;not null" json:"nric"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Age           int            `gorm:"not null" json:"age"`
	MaritalStatus string         `gorm:"size:10;not null" json:"marital_status"`
	Role          string         `gorm:"size:20;default:'APPLICANT'" json:"role"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// CanApply reports whether the user may hold applications of their own.
// Officers keep applicant capability; managers do not.
func (u *User) CanApply() bool {
	return u.Role == RoleApplicant || u.Role == RoleOfficer
}

// UserResponse DTO
type UserResponse struct {
	ID            uint      `json:"id"`
	NRIC          string    `json:"nric"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	MaritalStatus string    `json:"marital_status"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		NRIC:          u.NRIC,
		Name:          u.Name,
		Age:           u.Age,
		MaritalStatus: u.MaritalStatus,
		Role:          u.Role,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Projects & Inventory
// ============================================================

// Project represents a BTO project with its application window and
// officer slot capacity.
type Project struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Neighborhood string         `gorm:"size:100;not null" json:"neighborhood"`
	OpenDate     time.Time      `gorm:"type:date;not null" json:"open_date"`
	CloseDate    time.Time      `gorm:"type:date;not null" json:"close_date"`
	Visible      bool           `gorm:"default:false" json:"visible"`
	ManagerID    uint           `gorm:"not null;index" json:"manager_id"`
	OfficerSlots int            `gorm:"not null;default:10" json:"officer_slots"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager *User         `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Flats   []ProjectFlat `gorm:"foreignKey:ProjectID" json:"flats,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// IsOpenAt reports whether the application window contains t.
func (p *Project) IsOpenAt(t time.Time) bool {
	return !t.Before(p.OpenDate) && !t.After(p.CloseDate.Add(24*time.Hour-time.Nanosecond))
}

// OffersFlatType reports whether the project carries stock rows for the type.
func (p *Project) OffersFlatType(flatType string) bool {
	for _, f := range p.Flats {
		if f.FlatType == flatType {
			return true
		}
	}
	return false
}

// ProjectFlat represents per-project unit stock for one flat type.
// AvailableUnits is only ever written through the inventory service.
type ProjectFlat struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProjectID      uint      `gorm:"not null;uniqueIndex:idx_project_flat" json:"project_id"`
	FlatType       string    `gorm:"size:20;not null;uniqueIndex:idx_project_flat" json:"flat_type"`
	TotalUnits     int       `gorm:"not null" json:"total_units"`
	AvailableUnits int       `gorm:"not null" json:"available_units"`
	SellingPrice   float64   `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProjectFlat) TableName() string {
	return "project_flats"
}

// ProjectResponse DTO
type ProjectResponse struct {
	ID           uint          `json:"id"`
	Name         string        `json:"name"`
	Neighborhood string        `json:"neighborhood"`
	OpenDate     time.Time     `json:"open_date"`
	CloseDate    time.Time     `json:"close_date"`
	Visible      bool          `json:"visible"`
	ManagerID    uint          `json:"manager_id"`
	ManagerName  string        `json:"manager_name,omitempty"`
	OfficerSlots int           `json:"officer_slots"`
	Flats        []ProjectFlat `json:"flats"`
}

func (p *Project) ToResponse() *ProjectResponse {
	resp := &ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Neighborhood: p.Neighborhood,
		OpenDate:     p.OpenDate,
		CloseDate:    p.CloseDate,
		Visible:      p.Visible,
		ManagerID:    p.ManagerID,
		OfficerSlots: p.OfficerSlots,
		Flats:        p.Flats,
	}
	if p.Manager != nil {
		resp.ManagerName = p.Manager.Name
	}
	return resp
}

// ============================================================
// Applications
// ============================================================

// Application represents a flat application. An applicant holds at most
// one application whose status is not UNSUCCESSFUL.
type Application struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ApplicantID         uint      `gorm:"not null;index" json:"applicant_id"`
	ProjectID           uint      `gorm:"not null;index" json:"project_id"`
	FlatType            string    `gorm:"size:20;not null" json:"flat_type"`
	Status              string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	BookedFlatType      *string   `gorm:"size:20" json:"booked_flat_type"`
	WithdrawalRequested bool      `gorm:"default:false" json:"withdrawal_requested"`
	SubmittedAt         time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Applicant *User    `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// IsActive reports whether the application still blocks a new submission.
func (a *Application) IsActive() bool {
	return a.Status != ApplicationUnsuccessful
}

// ApplicationResponse DTO
type ApplicationResponse struct {
	ID                  uint      `json:"id"`
	ApplicantID         uint      `json:"applicant_id"`
	ApplicantName       string    `json:"applicant_name,omitempty"`
	ApplicantNRIC       string    `json:"applicant_nric,omitempty"`
	ProjectID           uint      `json:"project_id"`
	ProjectName         string    `json:"project_name,omitempty"`
	FlatType            string    `json:"flat_type"`
	Status              string    `json:"status"`
	BookedFlatType      *string   `json:"booked_flat_type"`
	WithdrawalRequested bool      `json:"withdrawal_requested"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

func (a *Application) ToResponse() *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:                  a.ID,
		ApplicantID:         a.ApplicantID,
		ProjectID:           a.ProjectID,
		FlatType:            a.FlatType,
		Status:              a.Status,
		BookedFlatType:      a.BookedFlatType,
		WithdrawalRequested: a.WithdrawalRequested,
		SubmittedAt:         a.SubmittedAt,
	}
	if a.Applicant != nil {
		resp.ApplicantName = a.Applicant.Name
		resp.ApplicantNRIC = a.Applicant.NRIC
	}
	if a.Project != nil {
		resp.ProjectName = a.Project.Name
	}
	return resp
}

// ============================================================
// Officer Registrations
// ============================================================

// Registration represents an officer's request to administer a project.
// Approval consumes one of the project's officer slots.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OfficerID uint      `gorm:"not null;index" json:"officer_id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Status    string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Officer *User    `gorm:"foreignKey:OfficerID" json:"officer,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}

// RegistrationResponse DTO
type RegistrationResponse struct {
	ID          uint      `json:"id"`
	OfficerID   uint      `json:"officer_id"`
	OfficerName string    `json:"officer_name,omitempty"`
	ProjectID   uint      `json:"project_id"`
	ProjectName string    `json:"project_name,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Registration) ToResponse() *RegistrationResponse {
	resp := &RegistrationResponse{
		ID:        r.ID,
		OfficerID: r.OfficerID,
		ProjectID: r.ProjectID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
	if r.Officer != nil {
		resp.OfficerName = r.Officer.Name
	}
	if r.Project != nil {
		resp.ProjectName = r.Project.Name
	}
	return resp
}

// ============================================================
// Enquiries
// ============================================================

// Enquiry represents a free-text question about a project.
type Enquiry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	ProjectID uint       `gorm:"not null;index" json:"project_id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Reply     *string    `gorm:"type:text" json:"reply"`
	RepliedBy *uint      `json:"replied_by"`
	RepliedAt *time.Time `json:"replied_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Enquiry) TableName() string {
	return "enquiries"
}

func (e *Enquiry) IsAnswered() bool {
	return e.Reply != nil
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Project{},
		&ProjectFlat{},
		&Application{},
		&Registration{},
		&Enquiry{},
	)
}
