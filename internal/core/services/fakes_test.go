package services

import (
	"context"
	"sync"
	"time"

	"github.com/Ekantik19/SC2002-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memStore is a shared in-memory backing store for the fake repositories.
// Reads hand out copies and writes copy values back in, so a service holding
// a stale pointer cannot mutate stored state without going through Update.
type memStore struct {
	mu            sync.Mutex
	users         map[uint]*models.User
	projects      map[uint]*models.Project
	flats         map[uint]*models.ProjectFlat
	applications  map[uint]*models.Application
	registrations map[uint]*models.Registration
	nextID        uint
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[uint]*models.User),
		projects:      make(map[uint]*models.Project),
		flats:         make(map[uint]*models.ProjectFlat),
		applications:  make(map[uint]*models.Application),
		registrations: make(map[uint]*models.Registration),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(u *models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	c := *u
	s.users[u.ID] = &c
	return u
}

func (s *memStore) addProject(p *models.Project) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	for i := range p.Flats {
		f := p.Flats[i]
		if f.ID == 0 {
			f.ID = s.id()
		}
		f.ProjectID = p.ID
		s.flats[f.ID] = &f
		p.Flats[i] = f
	}
	c := *p
	c.Flats = nil
	s.projects[p.ID] = &c
	return p
}

func (s *memStore) addApplication(a *models.Application) *models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.id()
	}
	c := *a
	c.Applicant = nil
	c.Project = nil
	s.applications[a.ID] = &c
	return a
}

func (s *memStore) addRegistration(r *models.Registration) *models.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	c := *r
	c.Officer = nil
	c.Project = nil
	s.registrations[r.ID] = &c
	return r
}

// projectCopy returns a detached copy with flats attached
func (s *memStore) projectCopy(id uint) *models.Project {
	p, ok := s.projects[id]
	if !ok {
		return nil
	}
	c := *p
	for _, f := range s.flats {
		if f.ProjectID == id {
			c.Flats = append(c.Flats, *f)
		}
	}
	if m, ok := s.users[c.ManagerID]; ok {
		mc := *m
		c.Manager = &mc
	}
	return &c
}

func (s *memStore) applicationCopy(id uint) *models.Application {
	a, ok := s.applications[id]
	if !ok {
		return nil
	}
	c := *a
	if u, ok := s.users[c.ApplicantID]; ok {
		uc := *u
		c.Applicant = &uc
	}
	c.Project = s.projectCopy(c.ProjectID)
	return &c
}

func (s *memStore) registrationCopy(id uint) *models.Registration {
	r, ok := s.registrations[id]
	if !ok {
		return nil
	}
	c := *r
	if u, ok := s.users[c.OfficerID]; ok {
		uc := *u
		c.Officer = &uc
	}
	c.Project = s.projectCopy(c.ProjectID)
	return &c
}

// ------------------------------------------------------------
// fakeUserRepo
// ------------------------------------------------------------

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.store.addUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByNRIC(ctx context.Context, nric string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.NRIC == nric {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *user
	r.store.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var users []*models.User
	for _, u := range r.store.users {
		c := *u
		users = append(users, &c)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) ExistsByNRIC(ctx context.Context, nric string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.NRIC == nric {
			return true, nil
		}
	}
	return false, nil
}

// ------------------------------------------------------------
// fakeProjectRepo
// ------------------------------------------------------------

type fakeProjectRepo struct {
	store *memStore

	updateFlatErr error // injected failure for UpdateFlat
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.store.addProject(project)
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p := r.store.projectCopy(id)
	if p == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProjectRepo) GetByName(ctx context.Context, name string) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, p := range r.store.projects {
		if p.Name == name {
			return r.store.projectCopy(id), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *project
	c.Flats = nil
	c.Manager = nil
	r.store.projects[project.ID] = &c
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.projects, id)
	return nil
}

func (r *fakeProjectRepo) List(ctx context.Context, offset, limit int) ([]*models.Project, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var projects []*models.Project
	for id := range r.store.projects {
		projects = append(projects, r.store.projectCopy(id))
	}
	return projects, int64(len(projects)), nil
}

func (r *fakeProjectRepo) ListVisible(ctx context.Context) ([]*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var projects []*models.Project
	for id, p := range r.store.projects {
		if p.Visible {
			projects = append(projects, r.store.projectCopy(id))
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListByManager(ctx context.Context, managerID uint) ([]*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var projects []*models.Project
	for id, p := range r.store.projects {
		if p.ManagerID == managerID {
			projects = append(projects, r.store.projectCopy(id))
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) ListVisibleClosedBefore(ctx context.Context, t time.Time) ([]*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var projects []*models.Project
	for id, p := range r.store.projects {
		if p.Visible && p.CloseDate.Before(t) {
			projects = append(projects, r.store.projectCopy(id))
		}
	}
	return projects, nil
}

func (r *fakeProjectRepo) HasOverlappingWindow(ctx context.Context, managerID uint, open, close time.Time, excludeID uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, p := range r.store.projects {
		if id == excludeID || p.ManagerID != managerID {
			continue
		}
		if !p.OpenDate.After(close) && !p.CloseDate.Before(open) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProjectRepo) CountApplications(ctx context.Context, projectID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, a := range r.store.applications {
		if a.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProjectRepo) GetFlat(ctx context.Context, projectID uint, flatType string) (*models.ProjectFlat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, f := range r.store.flats {
		if f.ProjectID == projectID && f.FlatType == flatType {
			c := *f
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProjectRepo) UpdateFlat(ctx context.Context, flat *models.ProjectFlat) error {
	if r.updateFlatErr != nil {
		return r.updateFlatErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *flat
	r.store.flats[flat.ID] = &c
	return nil
}

func (r *fakeProjectRepo) CreateFlat(ctx context.Context, flat *models.ProjectFlat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if flat.ID == 0 {
		flat.ID = r.store.id()
	}
	c := *flat
	r.store.flats[flat.ID] = &c
	return nil
}

// ------------------------------------------------------------
// fakeApplicationRepo
// ------------------------------------------------------------

type fakeApplicationRepo struct {
	store *memStore

	updateErr error // injected failure for Update
}

func (r *fakeApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	r.store.addApplication(application)
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a := r.store.applicationCopy(id)
	if a == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, application *models.Application) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *application
	c.Applicant = nil
	c.Project = nil
	r.store.applications[application.ID] = &c
	return nil
}

func (r *fakeApplicationRepo) GetActiveByApplicant(ctx context.Context, applicantID uint) (*models.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, a := range r.store.applications {
		if a.ApplicantID == applicantID && a.IsActive() {
			return r.store.applicationCopy(id), nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) GetActiveByApplicantAndProject(ctx context.Context, applicantID, projectID uint) (*models.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, a := range r.store.applications {
		if a.ApplicantID == applicantID && a.ProjectID == projectID && a.IsActive() {
			return r.store.applicationCopy(id), nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID uint) ([]*models.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var applications []*models.Application
	for id, a := range r.store.applications {
		if a.ApplicantID == applicantID {
			applications = append(applications, r.store.applicationCopy(id))
		}
	}
	return applications, nil
}

func (r *fakeApplicationRepo) ListByProject(ctx context.Context, projectID uint, offset, limit int) ([]*models.Application, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var applications []*models.Application
	for id, a := range r.store.applications {
		if a.ProjectID == projectID {
			applications = append(applications, r.store.applicationCopy(id))
		}
	}
	return applications, int64(len(applications)), nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]*models.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var applications []*models.Application
	for id := range r.store.applications {
		applications = append(applications, r.store.applicationCopy(id))
	}
	return applications, nil
}

// ------------------------------------------------------------
// fakeRegistrationRepo
// ------------------------------------------------------------

type fakeRegistrationRepo struct{ store *memStore }

func (r *fakeRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	r.store.addRegistration(registration)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(ctx context.Context, id uint) (*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	reg := r.store.registrationCopy(id)
	if reg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return reg, nil
}

func (r *fakeRegistrationRepo) Update(ctx context.Context, registration *models.Registration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *registration
	c.Officer = nil
	c.Project = nil
	r.store.registrations[registration.ID] = &c
	return nil
}

func (r *fakeRegistrationRepo) GetActiveByOfficer(ctx context.Context, officerID uint) (*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, reg := range r.store.registrations {
		if reg.OfficerID == officerID && reg.Status != models.RegistrationRejected {
			return r.store.registrationCopy(id), nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrationRepo) GetActiveByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, reg := range r.store.registrations {
		if reg.OfficerID == officerID && reg.ProjectID == projectID && reg.Status != models.RegistrationRejected {
			return r.store.registrationCopy(id), nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrationRepo) GetApprovedByOfficerAndProject(ctx context.Context, officerID, projectID uint) (*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for id, reg := range r.store.registrations {
		if reg.OfficerID == officerID && reg.ProjectID == projectID && reg.Status == models.RegistrationApproved {
			return r.store.registrationCopy(id), nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrationRepo) CountApproved(ctx context.Context, projectID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, reg := range r.store.registrations {
		if reg.ProjectID == projectID && reg.Status == models.RegistrationApproved {
			count++
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) ListByOfficer(ctx context.Context, officerID uint) ([]*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var registrations []*models.Registration
	for id, reg := range r.store.registrations {
		if reg.OfficerID == officerID {
			registrations = append(registrations, r.store.registrationCopy(id))
		}
	}
	return registrations, nil
}

func (r *fakeRegistrationRepo) ListByProject(ctx context.Context, projectID uint) ([]*models.Registration, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var registrations []*models.Registration
	for id, reg := range r.store.registrations {
		if reg.ProjectID == projectID {
			registrations = append(registrations, r.store.registrationCopy(id))
		}
	}
	return registrations, nil
}

// ------------------------------------------------------------
// Fixture
// ------------------------------------------------------------

// engineFixture wires the lifecycle services over one shared in-memory store
type engineFixture struct {
	store            *memStore
	userRepo         *fakeUserRepo
	projectRepo      *fakeProjectRepo
	applicationRepo  *fakeApplicationRepo
	registrationRepo *fakeRegistrationRepo

	inventory     *InventoryService
	applications  *ApplicationService
	withdrawals   *WithdrawalService
	registrations *RegistrationService

	manager   *models.User
	officer   *models.User
	applicant *models.User
	project   *models.Project
}

func newEngineFixture() *engineFixture {
	store := newMemStore()
	f := &engineFixture{
		store:            store,
		userRepo:         &fakeUserRepo{store: store},
		projectRepo:      &fakeProjectRepo{store: store},
		applicationRepo:  &fakeApplicationRepo{store: store},
		registrationRepo: &fakeRegistrationRepo{store: store},
	}

	eligibility := NewEligibilityService()
	f.inventory = NewInventoryService(f.projectRepo, f.registrationRepo)
	f.applications = NewApplicationService(
		f.applicationRepo, f.projectRepo, f.userRepo, f.registrationRepo,
		eligibility, f.inventory,
	)
	f.withdrawals = NewWithdrawalService(f.applicationRepo, f.inventory)
	f.registrations = NewRegistrationService(
		f.registrationRepo, f.applicationRepo, f.projectRepo, f.userRepo,
		f.inventory,
	)

	f.manager = store.addUser(&models.User{
		NRIC: "T8765432F", Name: "Jessica", Age: 26,
		MaritalStatus: models.MaritalMarried, Role: models.RoleManager, IsActive: true,
	})
	f.officer = store.addUser(&models.User{
		NRIC: "T2109876H", Name: "Daniel", Age: 36,
		MaritalStatus: models.MaritalSingle, Role: models.RoleOfficer, IsActive: true,
	})
	f.applicant = store.addUser(&models.User{
		NRIC: "S1234567A", Name: "John", Age: 35,
		MaritalStatus: models.MaritalSingle, Role: models.RoleApplicant, IsActive: true,
	})

	now := time.Now()
	f.project = store.addProject(&models.Project{
		Name:         "Acacia Breeze",
		Neighborhood: "Yishun",
		OpenDate:     now.AddDate(0, 0, -7),
		CloseDate:    now.AddDate(0, 1, 0),
		Visible:      true,
		ManagerID:    f.manager.ID,
		OfficerSlots: 3,
		Flats: []models.ProjectFlat{
			{FlatType: models.FlatTypeTwoRoom, TotalUnits: 2, AvailableUnits: 2, SellingPrice: 350000},
			{FlatType: models.FlatTypeThreeRoom, TotalUnits: 3, AvailableUnits: 3, SellingPrice: 450000},
		},
	})

	return f
}

// addApplicant creates one more eligible applicant account
func (f *engineFixture) addApplicant(nric, name string, age int, maritalStatus string) *models.User {
	return f.store.addUser(&models.User{
		NRIC: nric, Name: name, Age: age,
		MaritalStatus: maritalStatus, Role: models.RoleApplicant, IsActive: true,
	})
}

// available reads the stored unit count directly
func (f *engineFixture) available(projectID uint, flatType string) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, flat := range f.store.flats {
		if flat.ProjectID == projectID && flat.FlatType == flatType {
			return flat.AvailableUnits
		}
	}
	return -1
}

// storedApplication reads the persisted application state directly
func (f *engineFixture) storedApplication(id uint) *models.Application {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.applicationCopy(id)
}
