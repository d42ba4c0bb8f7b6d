package services

import (
	"context"

	"github.com/yigit/jobly/internal/app/models"
)

// Services defined in this package:
// - CompanyService: company CRUD and filtered listing
// - JobService: job CRUD and filtered listing
// - UserService: accounts, credentials and job applications
// - AuthService: token issuance on top of UserService

// CompanyStore is the persistence the company service needs
type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Get(ctx context.Context, handle string) (*models.Company, error)
	List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error)
	Update(ctx context.Context, handle string, update models.CompanyUpdate) (*models.Company, error)
	Remove(ctx context.Context, handle string) error
}

// JobStore is the persistence the job service needs
type JobStore interface {
	Create(ctx context.Context, job models.NewJob) (*models.Job, error)
	Get(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error)
	Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error)
	Remove(ctx context.Context, id int64) error
}

// UserStore is the persistence the user service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	GetWithPassword(ctx context.Context, username string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.UserDetail, error)
	Update(ctx context.Context, username string, update models.UserUpdate) (*models.User, error)
	Remove(ctx context.Context, username string) error
	CreateApplication(ctx context.Context, username string, jobID int64) (*models.Application, error)
	ApplicationExists(ctx context.Context, username string, jobID int64) (bool, error)
}
