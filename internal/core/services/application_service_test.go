package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCreatesPendingApplication(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationPending, app.Status)
	assert.Equal(t, f.applicant.ID, app.ApplicantID)
	assert.Nil(t, app.BookedFlatType)

	// Submission never touches inventory
	assert.Equal(t, 2, f.available(f.project.ID, models.FlatTypeTwoRoom))
}

func TestSubmitRejectsSecondActiveApplication(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestSubmitAllowedAgainAfterUnsuccessful(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = f.applications.Reject(ctx, app.ID, f.manager.ID)
	require.NoError(t, err)

	// UNSUCCESSFUL no longer blocks a fresh submission
	_, err = f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.NoError(t, err)
}

func TestSubmitEnforcesEligibility(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	// Single at 35 may not take a 3-Room flat
	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeThreeRoom,
	})
	assert.ErrorIs(t, err, ErrNotEligible)

	// Unmarried 30-year-old is not eligible for anything
	young := f.addApplicant("S7654321B", "Amy", 30, models.MaritalSingle)
	_, err = f.applications.Submit(ctx, young.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSubmitRejectsClosedWindow(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	f.store.mu.Lock()
	p := f.store.projects[f.project.ID]
	p.OpenDate = time.Now().AddDate(0, -2, 0)
	p.CloseDate = time.Now().AddDate(0, -1, 0)
	f.store.mu.Unlock()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrWindowClosed)
}

func TestSubmitTreatsHiddenProjectAsMissing(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	f.store.mu.Lock()
	f.store.projects[f.project.ID].Visible = false
	f.store.mu.Unlock()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSubmitRejectsExhaustedFlatType(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	f.store.mu.Lock()
	for _, flat := range f.store.flats {
		if flat.ProjectID == f.project.ID && flat.FlatType == models.FlatTypeTwoRoom {
			flat.AvailableUnits = 0
		}
	}
	f.store.mu.Unlock()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrNoInventory)
}

func TestSubmitBlocksRegisteredOfficer(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	_, err := f.registrations.Register(ctx, f.officer.ID, f.project.ID)
	require.NoError(t, err)

	_, err = f.applications.Submit(ctx, f.officer.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrConflictingApplicantRole)
}

func TestSubmitBlocksManager(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, f.manager.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestApproveDoesNotReserveUnit(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	approved, err := f.applications.Approve(ctx, app.ID, f.manager.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationSuccessful, approved.Status)
	assert.Equal(t, 2, f.available(f.project.ID, models.FlatTypeTwoRoom))
}

func TestApproveRestrictedToOwningManager(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	other := f.store.addUser(&models.User{
		NRIC: "S5678901G", Name: "Michael", Age: 36,
		MaritalStatus: models.MaritalSingle, Role: models.RoleManager, IsActive: true,
	})

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = f.applications.Approve(ctx, app.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestApproveRequiresPendingStatus(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = f.applications.Approve(ctx, app.ID, f.manager.ID)
	require.NoError(t, err)

	_, err = f.applications.Approve(ctx, app.ID, f.manager.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func approvedOfficer(t *testing.T, f *engineFixture) *models.User {
	t.Helper()
	reg, err := f.registrations.Register(context.Background(), f.officer.ID, f.project.ID)
	require.NoError(t, err)
	_, err = f.registrations.Approve(context.Background(), reg.ID, f.manager.ID)
	require.NoError(t, err)
	return f.officer
}

func successfulApplication(t *testing.T, f *engineFixture, applicant *models.User) *models.Application {
	t.Helper()
	ctx := context.Background()
	app, err := f.applications.Submit(ctx, applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)
	_, err = f.applications.Approve(ctx, app.ID, f.manager.ID)
	require.NoError(t, err)
	return app
}

func TestBookDecrementsInventoryAndSetsStatus(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	officer := approvedOfficer(t, f)
	app := successfulApplication(t, f, f.applicant)

	booked, err := f.applications.Book(ctx, app.ID, &BookInput{}, officer.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationBooked, booked.Status)
	require.NotNil(t, booked.BookedFlatType)
	assert.Equal(t, models.FlatTypeTwoRoom, *booked.BookedFlatType)
	assert.Equal(t, 1, f.available(f.project.ID, models.FlatTypeTwoRoom))
}

func TestBookRequiresApprovedOfficer(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	app := successfulApplication(t, f, f.applicant)

	// Officer never registered for the project
	_, err := f.applications.Book(ctx, app.ID, &BookInput{}, f.officer.ID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestBookRequiresSuccessfulStatus(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	officer := approvedOfficer(t, f)

	app, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	_, err = f.applications.Book(ctx, app.ID, &BookInput{}, officer.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookFailsAtZeroInventory(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	officer := approvedOfficer(t, f)
	app := successfulApplication(t, f, f.applicant)

	f.store.mu.Lock()
	for _, flat := range f.store.flats {
		if flat.ProjectID == f.project.ID && flat.FlatType == models.FlatTypeTwoRoom {
			flat.AvailableUnits = 0
		}
	}
	f.store.mu.Unlock()

	_, err := f.applications.Book(ctx, app.ID, &BookInput{}, officer.ID)
	assert.ErrorIs(t, err, ErrNoInventory)

	// Inventory never goes negative and the application keeps its status
	assert.Equal(t, 0, f.available(f.project.ID, models.FlatTypeTwoRoom))
	assert.Equal(t, models.ApplicationSuccessful, f.storedApplication(app.ID).Status)
}

func TestBookRestoresUnitWhenPersistFails(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	officer := approvedOfficer(t, f)
	app := successfulApplication(t, f, f.applicant)

	f.applicationRepo.updateErr = errors.New("write failed")

	_, err := f.applications.Book(ctx, app.ID, &BookInput{}, officer.ID)
	require.Error(t, err)

	f.applicationRepo.updateErr = nil

	// The decremented unit came back and the application stayed SUCCESSFUL
	assert.Equal(t, 2, f.available(f.project.ID, models.FlatTypeTwoRoom))
	assert.Equal(t, models.ApplicationSuccessful, f.storedApplication(app.ID).Status)
}

func TestBookWithFinalFlatTypeRechecksEligibility(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()
	officer := approvedOfficer(t, f)
	app := successfulApplication(t, f, f.applicant)

	// Single applicant cannot be switched onto a 3-Room flat at booking
	_, err := f.applications.Book(ctx, app.ID, &BookInput{FlatType: models.FlatTypeThreeRoom}, officer.ID)
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, 3, f.available(f.project.ID, models.FlatTypeThreeRoom))
}

func TestListByProjectAuthorization(t *testing.T) {
	f := newEngineFixture()
	ctx := context.Background()

	_, err := f.applications.Submit(ctx, f.applicant.ID, &SubmitInput{
		ProjectID: f.project.ID,
		FlatType:  models.FlatTypeTwoRoom,
	})
	require.NoError(t, err)

	// Owning manager sees the list
	apps, total, err := f.applications.ListByProject(ctx, f.project.ID, f.manager.ID, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, apps, 1)

	// Unregistered officer does not
	_, _, err = f.applications.ListByProject(ctx, f.project.ID, f.officer.ID, 0, 20)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	// Approved officer does
	officer := approvedOfficer(t, f)
	_, _, err = f.applications.ListByProject(ctx, f.project.ID, officer.ID, 0, 20)
	assert.NoError(t, err)
}
