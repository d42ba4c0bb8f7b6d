package dto

import "github.com/yigit/jobly/internal/app/models"

// CreateJobRequest is the body of POST /jobs
type CreateJobRequest struct {
	Title         string   `json:"title" binding:"required" example:"Job 1"`
	Salary        *int     `json:"salary" binding:"omitempty,min=0,max=2147483647" example:"100"`
	Equity        *float64 `json:"equity" binding:"omitempty,min=0,max=1" example:"0.1"`
	CompanyHandle string   `json:"company_handle" binding:"required,max=25" example:"c1"`
}

// ToModel converts the request into a new job
func (r CreateJobRequest) ToModel() models.NewJob {
	return models.NewJob{
		Title:         r.Title,
		Salary:        r.Salary,
		Equity:        r.Equity,
		CompanyHandle: r.CompanyHandle,
	}
}

// UpdateJobRequest is the body of PATCH /jobs/:id
type UpdateJobRequest struct {
	Title  *string  `json:"title" binding:"omitempty,min=1"`
	Salary *int     `json:"salary" binding:"omitempty,min=0,max=2147483647"`
	Equity *float64 `json:"equity" binding:"omitempty,min=0,max=1"`
}

// ToModel converts the request into a partial update
func (r UpdateJobRequest) ToModel() models.JobUpdate {
	return models.JobUpdate{
		Title:  r.Title,
		Salary: r.Salary,
		Equity: r.Equity,
	}
}

// JobResponse wraps a single job
type JobResponse struct {
	Job *models.Job `json:"job"`
}

// JobsResponse wraps a job listing
type JobsResponse struct {
	Jobs []*models.Job `json:"jobs"`
}
