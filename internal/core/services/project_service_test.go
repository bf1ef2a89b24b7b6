package services

import (
	"context"
	"testing"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(f *engineFixture) *ProjectService {
	return NewProjectService(f.projectRepo, f.applicationRepo, f.registrationRepo)
}

func validProjectInput(name string, open, close time.Time) *CreateProjectInput {
	return &CreateProjectInput{
		Name:         name,
		Neighborhood: "Tampines",
		OpenDate:     open,
		CloseDate:    close,
		OfficerSlots: 5,
		Flats: []FlatInput{
			{FlatType: models.FlatTypeTwoRoom, Units: 10, SellingPrice: 320000},
		},
	}
}

func TestCreateProjectStartsHidden(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	open := time.Now().AddDate(0, 2, 0)
	project, err := projects.Create(ctx, f.manager.ID, validProjectInput("Maple Grove", open, open.AddDate(0, 0, 14)))
	require.NoError(t, err)

	assert.False(t, project.Visible)
	assert.Equal(t, f.manager.ID, project.ManagerID)
	require.Len(t, project.Flats, 1)
	assert.Equal(t, 10, project.Flats[0].AvailableUnits)
	assert.Equal(t, 10, project.Flats[0].TotalUnits)
}

func TestCreateProjectRejectsDuplicateName(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	open := time.Now().AddDate(0, 2, 0)
	_, err := projects.Create(ctx, f.manager.ID, validProjectInput("Acacia Breeze", open, open.AddDate(0, 0, 14)))
	assert.ErrorIs(t, err, ErrProjectNameTaken)
}

func TestCreateProjectRejectsOverlappingWindow(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	// Acacia Breeze is open right now, so a second concurrent project for
	// the same manager is refused.
	_, err := projects.Create(ctx, f.manager.ID, validProjectInput("Maple Grove", time.Now(), time.Now().AddDate(0, 0, 7)))
	assert.ErrorIs(t, err, ErrOverlappingWindow)

	// A different manager may run a concurrent project.
	other := f.store.addUser(&models.User{
		NRIC: "T3333333C", Name: "Amelia", Age: 30,
		MaritalStatus: models.MaritalMarried, Role: models.RoleManager, IsActive: true,
	})
	_, err = projects.Create(ctx, other.ID, validProjectInput("Maple Grove", time.Now(), time.Now().AddDate(0, 0, 7)))
	assert.NoError(t, err)
}

func TestCreateProjectValidatesWindowAndSlots(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	open := time.Now().AddDate(0, 2, 0)

	input := validProjectInput("Maple Grove", open, open.AddDate(0, 0, -1))
	_, err := projects.Create(ctx, f.manager.ID, input)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	input = validProjectInput("Maple Grove", open, open.AddDate(0, 0, 14))
	input.OfficerSlots = 0
	_, err = projects.Create(ctx, f.manager.ID, input)
	assert.ErrorIs(t, err, ErrInvalidOfficerSlots)

	input.OfficerSlots = MaxOfficerSlots + 1
	_, err = projects.Create(ctx, f.manager.ID, input)
	assert.ErrorIs(t, err, ErrInvalidOfficerSlots)
}

func TestUpdateProjectOwnerOnly(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	neighborhood := "Punggol"
	_, err := projects.Update(ctx, f.project.ID, f.officer.ID, &UpdateProjectInput{Neighborhood: &neighborhood})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	updated, err := projects.Update(ctx, f.project.ID, f.manager.ID, &UpdateProjectInput{Neighborhood: &neighborhood})
	require.NoError(t, err)
	assert.Equal(t, "Punggol", updated.Neighborhood)
}

func TestUpdateWindowFrozenOnceApplicationsExist(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	newClose := time.Now().AddDate(0, 2, 0)
	_, err = projects.Update(ctx, f.project.ID, f.manager.ID, &UpdateProjectInput{CloseDate: &newClose})
	assert.ErrorIs(t, err, ErrProjectHasApplications)

	// Fields outside the window stay editable.
	neighborhood := "Punggol"
	_, err = projects.Update(ctx, f.project.ID, f.manager.ID, &UpdateProjectInput{Neighborhood: &neighborhood})
	assert.NoError(t, err)
}

func TestUpdateOfficerSlotsFlooredByApprovals(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	reg, err := f.registrations.Register(ctx, f.officer.ID, f.project.ID)
	require.NoError(t, err)
	_, err = f.registrations.Approve(ctx, reg.ID, f.manager.ID)
	require.NoError(t, err)

	slots := 0
	_, err = projects.Update(ctx, f.project.ID, f.manager.ID, &UpdateProjectInput{OfficerSlots: &slots})
	assert.ErrorIs(t, err, ErrInvalidOfficerSlots)

	slots = 1
	updated, err := projects.Update(ctx, f.project.ID, f.manager.ID, &UpdateProjectInput{OfficerSlots: &slots})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.OfficerSlots)
}

func TestDeleteProjectBlockedByApplications(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	err = projects.Delete(ctx, f.project.ID, f.manager.ID)
	assert.ErrorIs(t, err, ErrProjectHasApplications)
}

func TestSetVisibility(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	project, err := projects.SetVisibility(ctx, f.project.ID, f.manager.ID, false)
	require.NoError(t, err)
	assert.False(t, project.Visible)

	_, err = projects.SetVisibility(ctx, f.project.ID, f.officer.ID, true)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestListForUserVisibilityRules(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	// Applicant holds an application, then the project is hidden.
	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = projects.SetVisibility(ctx, f.project.ID, f.manager.ID, false)
	require.NoError(t, err)

	listed, err := projects.ListForUser(ctx, f.applicant)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.project.ID, listed[0].ID)

	// A bystander without an application sees nothing.
	bystander := f.addApplicant("S9999999Z", "Priya", 40, models.MaritalSingle)
	listed, err = projects.ListForUser(ctx, bystander)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// Managers see hidden projects too.
	listed, err = projects.ListForUser(ctx, f.manager)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestListForUserIncludesOfficerRegistration(t *testing.T) {
	f := newEngineFixture()
	projects := newProjectService(f)
	ctx := context.Background()

	_, err := f.registrations.Register(ctx, f.officer.ID, f.project.ID)
	require.NoError(t, err)

	_, err = projects.SetVisibility(ctx, f.project.ID, f.manager.ID, false)
	require.NoError(t, err)

	listed, err := projects.ListForUser(ctx, f.officer)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.project.ID, listed[0].ID)
}
