package services

import (
	"context"
	"testing"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportApplications() []*models.Application {
	acacia := &models.Project{Name: "Acacia Breeze"}
	maple := &models.Project{Name: "Maple Grove"}

	return []*models.Application{
		{
			FlatType: models.FlatTypeTwoRoom, Status: models.ApplicationBooked,
			Applicant: &models.User{Name: "John", Age: 35, MaritalStatus: models.MaritalSingle},
			Project:   acacia,
		},
		{
			FlatType: models.FlatTypeThreeRoom, Status: models.ApplicationBooked,
			Applicant: &models.User{Name: "Sarah", Age: 40, MaritalStatus: models.MaritalMarried},
			Project:   acacia,
		},
		{
			FlatType: models.FlatTypeTwoRoom, Status: models.ApplicationPending,
			Applicant: &models.User{Name: "Rachel", Age: 25, MaritalStatus: models.MaritalMarried},
			Project:   maple,
		},
		{
			FlatType: models.FlatTypeThreeRoom, Status: models.ApplicationUnsuccessful,
			Applicant: &models.User{Name: "David", Age: 29, MaritalStatus: models.MaritalMarried},
			Project:   maple,
		},
	}
}

func TestFilterApplications(t *testing.T) {
	apps := reportApplications()

	tests := []struct {
		name   string
		filter ReportFilter
		want   []string // applicant names, in input order
	}{
		{"empty filter matches everything", ReportFilter{}, []string{"John", "Sarah", "Rachel", "David"}},
		{"by project name", ReportFilter{ProjectName: "Acacia Breeze"}, []string{"John", "Sarah"}},
		{"by flat type", ReportFilter{FlatType: models.FlatTypeThreeRoom}, []string{"Sarah", "David"}},
		{"by marital status", ReportFilter{MaritalStatus: models.MaritalMarried}, []string{"Sarah", "Rachel", "David"}},
		{"by status", ReportFilter{Status: models.ApplicationBooked}, []string{"John", "Sarah"}},
		{"min age inclusive", ReportFilter{MinAge: 35}, []string{"John", "Sarah"}},
		{"max age inclusive", ReportFilter{MaxAge: 29}, []string{"Rachel", "David"}},
		{"age band", ReportFilter{MinAge: 25, MaxAge: 35}, []string{"John", "Rachel", "David"}},
		{"conjunction of criteria", ReportFilter{MaritalStatus: models.MaritalMarried, FlatType: models.FlatTypeThreeRoom, Status: models.ApplicationBooked}, []string{"Sarah"}},
		{"no match yields empty set", ReportFilter{ProjectName: "Nonexistent"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := FilterApplications(apps, &tt.filter)
			var names []string
			for _, a := range matched {
				names = append(names, a.Applicant.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	apps := reportApplications()
	FilterApplications(apps, &ReportFilter{FlatType: models.FlatTypeTwoRoom})
	assert.Len(t, apps, 4)
}

func TestGenerateReportCounts(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	married := f.addApplicant("S7654321B", "Sarah", 40, models.MaritalMarried)

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)
	_, err = f.applications.Submit(ctx, married.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeThreeRoom,
	})
	require.NoError(t, err)

	reports := NewReportService(f.applicationRepo)

	report, err := reports.Generate(ctx, &ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, 1, report.CountByFlatType[models.FlatTypeTwoRoom])
	assert.Equal(t, 1, report.CountByFlatType[models.FlatTypeThreeRoom])
	assert.Equal(t, 1, report.CountByMaritalStatus[models.MaritalSingle])
	assert.Equal(t, 1, report.CountByMaritalStatus[models.MaritalMarried])
	assert.Equal(t, 2, report.CountByStatus[models.ApplicationPending])
	assert.Equal(t, 2, report.CountByProject["Acacia Breeze"])

	// Filter narrows the same data set
	report, err = reports.Generate(ctx, &ReportFilter{MaritalStatus: models.MaritalMarried})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, "Sarah", report.Rows[0].ApplicantName)
}
