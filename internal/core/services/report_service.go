package services

import (
	"context"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"
	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/repositories"
)

// ReportService derives statistics over the application collection.
// Filtering is pure predicate composition; nothing is mutated.
type ReportService struct {
	applicationRepo repositories.ApplicationRepository
}

// NewReportService creates a new report service
func NewReportService(applicationRepo repositories.ApplicationRepository) *ReportService {
	return &ReportService{
		applicationRepo: applicationRepo,
	}
}

// ReportFilter represents report filter criteria. Zero values mean the
// criterion is not applied; an empty filter yields every application.
type ReportFilter struct {
	ProjectName   string `json:"project_name,omitempty"`
	FlatType      string `json:"flat_type,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	MinAge        int    `json:"min_age,omitempty"`
	MaxAge        int    `json:"max_age,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Matches reports whether one application satisfies every set criterion.
// Age bounds are inclusive.
func (f *ReportFilter) Matches(a *models.Application) bool {
	if f.ProjectName != "" && (a.Project == nil || a.Project.Name != f.ProjectName) {
		return false
	}
	if f.FlatType != "" && a.FlatType != f.FlatType {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if a.Applicant == nil {
		return f.MaritalStatus == "" && f.MinAge == 0 && f.MaxAge == 0
	}
	if f.MaritalStatus != "" && a.Applicant.MaritalStatus != f.MaritalStatus {
		return false
	}
	if f.MinAge > 0 && a.Applicant.Age < f.MinAge {
		return false
	}
	if f.MaxAge > 0 && a.Applicant.Age > f.MaxAge {
		return false
	}
	return true
}

// FilterApplications returns the applications matching the filter. Pure:
// the input slice is not modified.
func FilterApplications(applications []*models.Application, filter *ReportFilter) []*models.Application {
	matched := make([]*models.Application, 0, len(applications))
	for _, a := range applications {
		if filter.Matches(a) {
			matched = append(matched, a)
		}
	}
	return matched
}

// Report represents derived statistics for a filtered set of applications
type Report struct {
	Rows                 []*models.ApplicationResponse `json:"rows"`
	Total                int                           `json:"total"`
	CountByFlatType      map[string]int                `json:"count_by_flat_type"`
	CountByMaritalStatus map[string]int                `json:"count_by_marital_status"`
	CountByStatus        map[string]int                `json:"count_by_status"`
	CountByProject       map[string]int                `json:"count_by_project"`
}

// Generate builds a report over the application collection
func (s *ReportService) Generate(ctx context.Context, filter *ReportFilter) (*Report, error) {
	applications, err := s.applicationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := FilterApplications(applications, filter)

	report := &Report{
		Rows:                 make([]*models.ApplicationResponse, 0, len(matched)),
		Total:                len(matched),
		CountByFlatType:      make(map[string]int),
		CountByMaritalStatus: make(map[string]int),
		CountByStatus:        make(map[string]int),
		CountByProject:       make(map[string]int),
	}

	for _, a := range matched {
		report.Rows = append(report.Rows, a.ToResponse())
		report.CountByFlatType[a.FlatType]++
		report.CountByStatus[a.Status]++
		if a.Applicant != nil {
			report.CountByMaritalStatus[a.Applicant.MaritalStatus]++
		}
		if a.Project != nil {
			report.CountByProject[a.Project.Name]++
		}
	}

	return report, nil
}
