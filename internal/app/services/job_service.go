package services

import (
	"context"

	"github.com/yigit/jobly/internal/app/models"
)

// JobService defines the interface for job-related operations
type JobService interface {
	Create(ctx context.Context, job models.NewJob) (*models.Job, error)
	Get(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error)
	Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error)
	Remove(ctx context.Context, id int64) error
}

type jobServiceImpl struct {
	jobs JobStore
}

// NewJobService creates a new job service instance
func NewJobService(jobs JobStore) JobService {
	return &jobServiceImpl{jobs: jobs}
}

func (s *jobServiceImpl) Create(ctx context.Context, job models.NewJob) (*models.Job, error) {
	return s.jobs.Create(ctx, job)
}

func (s *jobServiceImpl) Get(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobs.Get(ctx, id)
}

func (s *jobServiceImpl) List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error) {
	return s.jobs.List(ctx, filter)
}

func (s *jobServiceImpl) Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error) {
	return s.jobs.Update(ctx, id, update)
}

func (s *jobServiceImpl) Remove(ctx context.Context, id int64) error {
	return s.jobs.Remove(ctx, id)
}
