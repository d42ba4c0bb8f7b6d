package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/repositories"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/auth"
)

func ptr[T any](v T) *T { return &v }

// memUsers is an in-memory UserStore
type memUsers struct {
	users        map[string]*models.User
	applications map[string][]int64
	createCalls  int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}, applications: map[string][]int64{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	m.createCalls++
	if _, ok := m.users[u.Username]; ok {
		return nil, repositories.DuplicateUsername(u.Username)
	}
	stored := *u
	m.users[u.Username] = &stored
	out := stored
	out.Password = ""
	return &out, nil
}

func (m *memUsers) Exists(_ context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

func (m *memUsers) GetWithPassword(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, apperrors.NewNotFoundError("No user: " + username)
	}
	out := *u
	return &out, nil
}

func (m *memUsers) FindAll(context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memUsers) Get(_ context.Context, username string) (*models.UserDetail, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, apperrors.NewNotFoundError("No user: " + username)
	}
	return &models.UserDetail{User: *u, Jobs: append([]int64{}, m.applications[username]...)}, nil
}

func (m *memUsers) Update(_ context.Context, username string, upd models.UserUpdate) (*models.User, error) {
	if len(upd.Fields()) == 0 {
		return nil, apperrors.NewBadRequestError("No data")
	}
	u, ok := m.users[username]
	if !ok {
		return nil, apperrors.NewNotFoundError("No user: " + username)
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	out := *u
	return &out, nil
}

func (m *memUsers) Remove(_ context.Context, username string) error {
	if _, ok := m.users[username]; !ok {
		return apperrors.NewNotFoundError("No user: " + username)
	}
	delete(m.users, username)
	return nil
}

func (m *memUsers) CreateApplication(_ context.Context, username string, jobID int64) (*models.Application, error) {
	for _, id := range m.applications[username] {
		if id == jobID {
			return nil, repositories.ErrAlreadyApplied
		}
	}
	m.applications[username] = append(m.applications[username], jobID)
	return &models.Application{Username: username, JobID: jobID}, nil
}

func (m *memUsers) ApplicationExists(_ context.Context, username string, jobID int64) (bool, error) {
	for _, id := range m.applications[username] {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

// memJobs is an in-memory JobStore
type memJobs struct {
	jobs   map[int64]*models.Job
	nextID int64
}

func newMemJobs() *memJobs { return &memJobs{jobs: map[int64]*models.Job{}, nextID: 1} }

func (m *memJobs) Create(_ context.Context, j models.NewJob) (*models.Job, error) {
	job := &models.Job{ID: m.nextID, Title: j.Title, Salary: j.Salary, CompanyHandle: j.CompanyHandle}
	if j.Equity != nil {
		job.Equity = ptr(fmt.Sprint(*j.Equity))
	}
	m.jobs[job.ID] = job
	m.nextID++
	return job, nil
}

func (m *memJobs) Get(_ context.Context, id int64) (*models.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", id))
	}
	return j, nil
}

func (m *memJobs) List(_ context.Context, f models.JobFilter) ([]*models.Job, error) {
	var out []*models.Job
	for _, j := range m.jobs {
		if f.Title != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Title)) {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (m *memJobs) Update(_ context.Context, id int64, u models.JobUpdate) (*models.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", id))
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	return j, nil
}

func (m *memJobs) Remove(_ context.Context, id int64) error {
	if _, ok := m.jobs[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", id))
	}
	delete(m.jobs, id)
	return nil
}

// memCompanies records the filter it was asked for
type memCompanies struct {
	listed  *models.CompanyFilter
	created *models.Company
}

func (m *memCompanies) Create(_ context.Context, c *models.Company) (*models.Company, error) {
	m.created = c
	return c, nil
}
func (m *memCompanies) Get(context.Context, string) (*models.Company, error) { return nil, nil }
func (m *memCompanies) List(_ context.Context, f models.CompanyFilter) ([]*models.Company, error) {
	m.listed = &f
	return []*models.Company{}, nil
}
func (m *memCompanies) Update(context.Context, string, models.CompanyUpdate) (*models.Company, error) {
	return nil, nil
}
func (m *memCompanies) Remove(context.Context, string) error { return nil }

func newUserService(t *testing.T) (UserService, *memUsers, *memJobs) {
	t.Helper()
	users, jobs := newMemUsers(), newMemJobs()
	return NewUserService(users, jobs, auth.NewPasswordHasher(1)), users, jobs
}

func registerU1(t *testing.T, svc UserService) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), models.NewUser{
		Username: "u1", Password: "password1", FirstName: "U1F", LastName: "U1L", Email: "u1@email.com",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newUserService(t)

	u := registerU1(t, svc)
	assert.Equal(t, "u1", u.Username)
	assert.Empty(t, u.Password)
	assert.True(t, strings.HasPrefix(users.users["u1"].Password, "$2"))
}

func TestRegisterDuplicateCheckedBeforeInsert(t *testing.T) {
	svc, users, _ := newUserService(t)
	registerU1(t, svc)

	_, err := svc.Register(context.Background(), models.NewUser{Username: "u1", Password: "password2"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Equal(t, "Duplicate username: u1", err.Error())
	assert.Equal(t, 1, users.createCalls)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newUserService(t)
	registerU1(t, svc)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "u1", "password1")
	require.NoError(t, err)
	assert.Equal(t, "U1F", u.FirstName)
	assert.Empty(t, u.Password)

	_, wrongPassword := svc.Authenticate(ctx, "u1", "wrong")
	_, unknownUser := svc.Authenticate(ctx, "nope", "password1")

	assert.ErrorIs(t, wrongPassword, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, apperrors.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, users, _ := newUserService(t)
	registerU1(t, svc)
	before := users.users["u1"].Password

	_, err := svc.Update(context.Background(), "u1", models.UserUpdate{Password: ptr("new-password")})
	require.NoError(t, err)

	after := users.users["u1"].Password
	assert.NotEqual(t, before, after)
	assert.NotEqual(t, "new-password", after)

	_, err = svc.Authenticate(context.Background(), "u1", "new-password")
	assert.NoError(t, err)
}

func TestApplyToJob(t *testing.T) {
	svc, _, jobs := newUserService(t)
	registerU1(t, svc)
	ctx := context.Background()

	job, err := jobs.Create(ctx, models.NewJob{Title: "Job 1", CompanyHandle: "c1"})
	require.NoError(t, err)

	app, err := svc.ApplyToJob(ctx, "u1", job.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.Application{Username: "u1", JobID: job.ID}, app)

	_, err = svc.ApplyToJob(ctx, "u1", job.ID)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.ApplyToJob(ctx, "ghost", job.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "No user: ghost", err.Error())

	_, err = svc.ApplyToJob(ctx, "u1", 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "No job: 999", err.Error())

	detail, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{job.ID}, detail.Jobs)
}

func TestCompanyListValidatesBeforeQuery(t *testing.T) {
	store := &memCompanies{}
	svc := NewCompanyService(store)

	_, err := svc.List(context.Background(), models.CompanyFilter{MinEmployees: ptr(10), MaxEmployees: ptr(1)})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Nil(t, store.listed)

	_, err = svc.List(context.Background(), models.CompanyFilter{Name: ptr("c")})
	require.NoError(t, err)
	require.NotNil(t, store.listed)
}

func TestCompanyCreateNormalizesHandle(t *testing.T) {
	store := &memCompanies{}
	_, err := NewCompanyService(store).Create(context.Background(), &models.Company{Handle: " Acme ", Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "acme", store.created.Handle)
}

func TestJobServiceDelegates(t *testing.T) {
	jobs := newMemJobs()
	svc := NewJobService(jobs)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.NewJob{Title: "Job 1", Salary: ptr(100), Equity: ptr(0.1), CompanyHandle: "c1"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.1", *got.Equity)

	list, err := svc.List(ctx, models.JobFilter{Title: ptr("job")})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Remove(ctx, created.ID))
	assert.ErrorIs(t, svc.Remove(ctx, created.ID), apperrors.ErrNotFound)
}

func TestAuthServiceIssuesTokens(t *testing.T) {
	users, _, _ := newUserService(t)
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "jobly"})
	svc := NewAuthService(users, jwtSvc, zerolog.Nop())
	ctx := context.Background()

	token, err := svc.Register(ctx, models.NewUser{Username: "new", Password: "password", IsAdmin: true, Email: "n@e.com"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new", claims.Username)
	assert.False(t, claims.IsAdmin)

	token, err = svc.Login(ctx, "new", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(ctx, "new", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
