package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/middleware"
	"github.com/yigit/jobly/internal/pkg/helpers"
)

// JobController handles job endpoints
type JobController struct {
	jobService services.JobService
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService) *JobController {
	return &JobController{jobService: jobService}
}

// Create adds a job
// @Summary Create a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "No company"
// @Security BearerAuth
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.JobResponse{Job: job})
}

// List returns jobs, optionally filtered
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param title query string false "Case-insensitive substring of the title"
// @Param minSalary query int false "Minimum salary"
// @Param hasEquity query bool false "Only jobs with non-zero equity"
// @Param companyHandle query string false "Company handle"
// @Success 200 {object} dto.JobsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	filter, err := jobFilter(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	jobs, err := c.jobService.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobsResponse{Jobs: jobs})
}

func jobFilter(ctx *gin.Context) (models.JobFilter, error) {
	query := ctx.Request.URL.Query()
	minSalary, err := helpers.QueryNonNegativeInt(query, "minSalary")
	if err != nil {
		return models.JobFilter{}, err
	}
	hasEquity, err := helpers.QueryBool(query, "hasEquity")
	if err != nil {
		return models.JobFilter{}, err
	}
	return models.JobFilter{
		Title:         helpers.QueryString(query, "title"),
		MinSalary:     minSalary,
		HasEquity:     hasEquity,
		CompanyHandle: helpers.QueryString(query, "companyHandle"),
	}, nil
}

// Get returns one job
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 404 {object} dto.ErrorResponse "No job"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	id, err := int64Param(ctx, "id")
	if err != nil {
		fail(ctx, err)
		return
	}

	job, err := c.jobService.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobResponse{Job: job})
}

// Update patches a job's title, salary or equity
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Fields to change"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "No job"
// @Security BearerAuth
// @Router /jobs/{id} [patch]
func (c *JobController) Update(ctx *gin.Context) {
	id, err := int64Param(ctx, "id")
	if err != nil {
		fail(ctx, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	job, err := c.jobService.Update(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.JobResponse{Job: job})
}

// Remove deletes a job
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.DeletedResponse
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "No job"
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (c *JobController) Remove(ctx *gin.Context) {
	id, err := int64Param(ctx, "id")
	if err != nil {
		fail(ctx, err)
		return
	}

	if err := c.jobService.Remove(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeletedResponse{Deleted: strconv.FormatInt(id, 10)})
}
