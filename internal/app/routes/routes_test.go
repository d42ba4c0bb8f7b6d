package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/jobly/internal/app/controllers"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/config"
	"github.com/yigit/jobly/internal/middleware"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/auth"
)

type fakeCompanies struct {
	listed *models.CompanyFilter
}

func (f *fakeCompanies) Create(_ context.Context, c *models.Company) (*models.Company, error) {
	if c.Handle == "c1" {
		return nil, apperrors.NewBadRequestError("Duplicate company: c1")
	}
	return c, nil
}

func (f *fakeCompanies) Get(_ context.Context, handle string) (*models.Company, error) {
	if handle != "c1" {
		return nil, apperrors.NewNotFoundError("No company: " + handle)
	}
	return &models.Company{Handle: "c1", Name: "C1", Description: "Desc1"}, nil
}

func (f *fakeCompanies) List(_ context.Context, filter models.CompanyFilter) ([]*models.Company, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	f.listed = &filter
	return []*models.Company{{Handle: "c1", Name: "C1"}}, nil
}

func (f *fakeCompanies) Update(ctx context.Context, handle string, u models.CompanyUpdate) (*models.Company, error) {
	c, err := f.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	return c, nil
}

func (f *fakeCompanies) Remove(ctx context.Context, handle string) error {
	_, err := f.Get(ctx, handle)
	return err
}

type fakeJobs struct {
	listed *models.JobFilter
}

func (f *fakeJobs) Create(_ context.Context, j models.NewJob) (*models.Job, error) {
	return &models.Job{ID: 7, Title: j.Title, Salary: j.Salary, CompanyHandle: j.CompanyHandle}, nil
}

func (f *fakeJobs) Get(_ context.Context, id int64) (*models.Job, error) {
	if id != 7 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", id))
	}
	return &models.Job{ID: 7, Title: "Job 1", CompanyHandle: "c1"}, nil
}

func (f *fakeJobs) List(_ context.Context, filter models.JobFilter) ([]*models.Job, error) {
	f.listed = &filter
	return []*models.Job{}, nil
}

func (f *fakeJobs) Update(ctx context.Context, id int64, _ models.JobUpdate) (*models.Job, error) {
	return f.Get(ctx, id)
}

func (f *fakeJobs) Remove(ctx context.Context, id int64) error {
	_, err := f.Get(ctx, id)
	return err
}

type fakeUsers struct {
	updated *models.UserUpdate
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	if username == "u1" && password == "password1" {
		return &models.User{Username: "u1"}, nil
	}
	return nil, services.ErrInvalidCredentials
}

func (f *fakeUsers) Register(_ context.Context, u models.NewUser) (*models.User, error) {
	if u.Username == "u1" {
		return nil, apperrors.NewBadRequestError("Duplicate username: u1")
	}
	return &models.User{Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin}, nil
}

func (f *fakeUsers) FindAll(context.Context) ([]*models.User, error) {
	return []*models.User{{Username: "u1"}}, nil
}

func (f *fakeUsers) Get(_ context.Context, username string) (*models.UserDetail, error) {
	return &models.UserDetail{User: models.User{Username: username}, Jobs: []int64{7}}, nil
}

func (f *fakeUsers) Update(_ context.Context, username string, u models.UserUpdate) (*models.User, error) {
	f.updated = &u
	return &models.User{Username: username}, nil
}

func (f *fakeUsers) Remove(context.Context, string) error { return nil }

func (f *fakeUsers) ApplyToJob(_ context.Context, username string, jobID int64) (*models.Application, error) {
	if jobID != 7 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", jobID))
	}
	return &models.Application{Username: username, JobID: jobID}, nil
}

type testServer struct {
	router    *gin.Engine
	jwt       *auth.JWTService
	companies *fakeCompanies
	jobs      *fakeJobs
	users     *fakeUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		jwt:       auth.NewJWTService(auth.JWTConfig{SecretKey: "test", TokenExp: time.Hour, TokenIssuer: "jobly"}),
		companies: &fakeCompanies{},
		jobs:      &fakeJobs{},
		users:     &fakeUsers{},
	}
	authService := services.NewAuthService(ts.users, ts.jwt, zerolog.Nop())

	ts.router = gin.New()
	ts.router.Use(middleware.ErrorHandler(config.ModeTest), middleware.Recovery())
	SetupRouter(ts.router,
		controllers.NewAuthController(authService, zerolog.Nop()),
		controllers.NewCompanyController(ts.companies),
		controllers.NewJobController(ts.jobs),
		controllers.NewUserController(ts.users, authService, zerolog.Nop()),
		middleware.NewAuthMiddleware(ts.jwt),
	)
	return ts
}

func (ts *testServer) token(t *testing.T, username string, isAdmin bool) string {
	t.Helper()
	tok, err := ts.jwt.GenerateToken(username, isAdmin)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected an error body, got %s", w.Body.String())
	return errBody["message"].(string)
}

func TestPingAndUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = ts.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Not Found","status":404}}`, w.Body.String())
}

func TestAuthRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("token", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/token", "", map[string]any{"username": "u1", "password": "password1"})
		require.Equal(t, http.StatusOK, w.Code)
		claims, err := ts.jwt.ValidateToken(decode(t, w)["token"].(string))
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Username)
	})

	t.Run("token with bad password", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/token", "", map[string]any{"username": "u1", "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username/password", errorMessage(t, w))
	})

	t.Run("token with missing fields", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/token", "", map[string]any{"username": "u1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("register ignores isAdmin", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/register", "", map[string]any{
			"username": "new", "password": "password", "firstName": "first",
			"lastName": "last", "email": "new@email.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		claims, err := ts.jwt.ValidateToken(decode(t, w)["token"].(string))
		require.NoError(t, err)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("register rejects isAdmin field", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/register", "", map[string]any{
			"username": "new", "password": "password", "firstName": "first",
			"lastName": "last", "email": "new@email.com", "isAdmin": true,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("register duplicate", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/auth/register", "", map[string]any{
			"username": "u1", "password": "password", "firstName": "first",
			"lastName": "last", "email": "u1@email.com",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Duplicate username: u1", errorMessage(t, w))
	})
}

func TestCompanyRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, "admin", true)
	u1 := ts.token(t, "u1", false)
	newCompany := map[string]any{"handle": "new", "name": "New", "description": "DescNew", "numEmployees": 10, "logoUrl": "http://new.img"}

	w := ts.do(http.MethodPost, "/companies", admin, newCompany)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "new", decode(t, w)["company"].(map[string]any)["handle"])

	w = ts.do(http.MethodPost, "/companies", u1, newCompany)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/companies", "", newCompany)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/companies", admin, map[string]any{"handle": "new", "numEmployees": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["error"].(map[string]any)["errors"].([]any)
	assert.Len(t, errs, 3)

	w = ts.do(http.MethodGet, "/companies?name=c&minEmployees=1&maxEmployees=5", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, ts.companies.listed)
	assert.Equal(t, "c", *ts.companies.listed.Name)
	assert.Equal(t, 1, *ts.companies.listed.MinEmployees)

	w = ts.do(http.MethodGet, "/companies?minEmployees=5&maxEmployees=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/companies?minEmployees=lots", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "minEmployees must be a non-negative integer", errorMessage(t, w))

	w = ts.do(http.MethodGet, "/companies?minEmployees=3000000000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "minEmployees must be a non-negative integer", errorMessage(t, w))

	for _, handle := range []string{"   ", "a/b"} {
		w = ts.do(http.MethodPost, "/companies", admin, map[string]any{"handle": handle, "name": "X", "description": "X"})
		assert.Equal(t, http.StatusBadRequest, w.Code, handle)
	}

	w = ts.do(http.MethodPost, "/companies", admin, map[string]any{"handle": "big", "name": "Big", "description": "Big", "numEmployees": 3000000000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "numEmployees must be at most 2147483647", errorMessage(t, w))

	w = ts.do(http.MethodPatch, "/companies/c1", admin, map[string]any{"numEmployees": 3000000000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/companies/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No company: nope", errorMessage(t, w))

	w = ts.do(http.MethodPatch, "/companies/c1", admin, map[string]any{"name": "C1-new"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C1-new", decode(t, w)["company"].(map[string]any)["name"])

	w = ts.do(http.MethodPatch, "/companies/c1", admin, map[string]any{"handle": "c1-new"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/companies/c1", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":"c1"}`, w.Body.String())

	w = ts.do(http.MethodDelete, "/companies/c1", u1, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, "admin", true)

	w := ts.do(http.MethodPost, "/jobs", admin, map[string]any{"title": "Job 1", "salary": 100, "equity": 0.1, "company_handle": "c1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 7, decode(t, w)["job"].(map[string]any)["id"])

	w = ts.do(http.MethodPost, "/jobs", admin, map[string]any{"title": "Job 1", "equity": 1.5, "company_handle": "c1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/jobs?title=Job&minSalary=100&hasEquity=true&companyHandle=c1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"jobs":[]}`, w.Body.String())
	require.NotNil(t, ts.jobs.listed)
	assert.Equal(t, models.JobFilter{Title: ptr("Job"), MinSalary: ptr(100), HasEquity: true, CompanyHandle: ptr("c1")}, *ts.jobs.listed)

	ts.jobs.listed = nil
	w = ts.do(http.MethodGet, "/jobs?minSalary=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, ts.jobs.listed)

	w = ts.do(http.MethodGet, "/jobs?minSalary=3000000000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "minSalary must be a non-negative integer", errorMessage(t, w))
	assert.Nil(t, ts.jobs.listed)

	w = ts.do(http.MethodPost, "/jobs", admin, map[string]any{"title": "Job 2", "salary": 3000000000, "company_handle": "c1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "salary must be at most 2147483647", errorMessage(t, w))

	w = ts.do(http.MethodPatch, "/jobs/7", admin, map[string]any{"salary": 3000000000})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/jobs/3000000000", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `id is out of range, got "3000000000"`, errorMessage(t, w))

	w = ts.do(http.MethodGet, "/jobs?hasEquity=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/jobs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/jobs/0", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No job: 0", errorMessage(t, w))

	w = ts.do(http.MethodPatch, "/jobs/7", admin, map[string]any{"company_handle": "c2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodDelete, "/jobs/7", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":"7"}`, w.Body.String())
}

func TestUserRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, "admin", true)
	u1 := ts.token(t, "u1", false)

	t.Run("admin creates admin", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/users", admin, map[string]any{
			"username": "boss", "password": "password", "firstName": "B",
			"lastName": "Oss", "email": "boss@email.com", "isAdmin": true,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["user"].(map[string]any)["isAdmin"])
		claims, err := ts.jwt.ValidateToken(body["token"].(string))
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("user cannot create users", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/users", u1, map[string]any{
			"username": "x", "password": "password", "firstName": "X",
			"lastName": "X", "email": "x@email.com",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("list is admin only", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/users", admin, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/users", u1, nil).Code)
	})

	t.Run("get self or admin", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/users/u1", u1, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{float64(7)}, decode(t, w)["user"].(map[string]any)["jobs"])

		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/users/u2", admin, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/users/u2", u1, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/users/u1", "", nil).Code)
	})

	t.Run("patch", func(t *testing.T) {
		w := ts.do(http.MethodPatch, "/users/u1", u1, map[string]any{"firstName": "New"})
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, ts.users.updated)
		assert.Equal(t, "New", *ts.users.updated.FirstName)

		ts.users.updated = nil
		w = ts.do(http.MethodPatch, "/users/u1", u1, map[string]any{"isAdmin": true})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, ts.users.updated)

		w = ts.do(http.MethodPatch, "/users/u1", admin, map[string]any{"isAdmin": true})
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.do(http.MethodPatch, "/users/u1", u1, map[string]any{"email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := ts.do(http.MethodDelete, "/users/u1", u1, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":"u1"}`, w.Body.String())
	})

	t.Run("apply", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/users/u1/jobs/7", u1, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"applied":7}`, w.Body.String())

		assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPost, "/users/u1/jobs/0", u1, nil).Code)
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/users/u1/jobs/x", u1, nil).Code)
		assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodPost, "/users/u1/jobs/3000000000", u1, nil).Code)
		assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/users/u2/jobs/7", u1, nil).Code)
		assert.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/users/u2/jobs/7", admin, nil).Code)
	})
}

func ptr[T any](v T) *T { return &v }
