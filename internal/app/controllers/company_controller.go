package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/middleware"
	"github.com/yigit/jobly/internal/pkg/helpers"
)

// CompanyController handles company endpoints
type CompanyController struct {
	companyService services.CompanyService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService services.CompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

// Create adds a company
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Param request body dto.CreateCompanyRequest true "Company"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or duplicate company"
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Security BearerAuth
// @Router /companies [post]
func (c *CompanyController) Create(ctx *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	company, err := c.companyService.Create(ctx.Request.Context(), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CompanyResponse{Company: company})
}

// List returns companies, optionally filtered
// @Summary List companies
// @Tags companies
// @Produce json
// @Param name query string false "Case-insensitive substring of the name"
// @Param minEmployees query int false "Minimum number of employees"
// @Param maxEmployees query int false "Maximum number of employees"
// @Success 200 {object} dto.CompaniesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Router /companies [get]
func (c *CompanyController) List(ctx *gin.Context) {
	filter, err := companyFilter(ctx)
	if err != nil {
		fail(ctx, err)
		return
	}

	companies, err := c.companyService.List(ctx.Request.Context(), filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompaniesResponse{Companies: companies})
}

func companyFilter(ctx *gin.Context) (models.CompanyFilter, error) {
	query := ctx.Request.URL.Query()
	minEmployees, err := helpers.QueryNonNegativeInt(query, "minEmployees")
	if err != nil {
		return models.CompanyFilter{}, err
	}
	maxEmployees, err := helpers.QueryNonNegativeInt(query, "maxEmployees")
	if err != nil {
		return models.CompanyFilter{}, err
	}
	return models.CompanyFilter{
		Name:         helpers.QueryString(query, "name"),
		MinEmployees: minEmployees,
		MaxEmployees: maxEmployees,
	}, nil
}

// Get returns one company
// @Summary Get a company
// @Tags companies
// @Produce json
// @Param handle path string true "Company handle"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} dto.ErrorResponse "No company"
// @Router /companies/{handle} [get]
func (c *CompanyController) Get(ctx *gin.Context) {
	company, err := c.companyService.Get(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyResponse{Company: company})
}

// Update patches a company
// @Summary Update a company
// @Tags companies
// @Accept json
// @Produce json
// @Param handle path string true "Company handle"
// @Param request body dto.UpdateCompanyRequest true "Fields to change"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "No company"
// @Security BearerAuth
// @Router /companies/{handle} [patch]
func (c *CompanyController) Update(ctx *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := middleware.BindJSON(ctx, &req); err != nil {
		fail(ctx, err)
		return
	}

	company, err := c.companyService.Update(ctx.Request.Context(), ctx.Param("handle"), req.ToModel())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CompanyResponse{Company: company})
}

// Remove deletes a company and its jobs
// @Summary Delete a company
// @Tags companies
// @Produce json
// @Param handle path string true "Company handle"
// @Success 200 {object} dto.DeletedResponse
// @Failure 401 {object} dto.ErrorResponse "Admin required"
// @Failure 404 {object} dto.ErrorResponse "No company"
// @Security BearerAuth
// @Router /companies/{handle} [delete]
func (c *CompanyController) Remove(ctx *gin.Context) {
	handle := ctx.Param("handle")
	if err := c.companyService.Remove(ctx.Request.Context(), handle); err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeletedResponse{Deleted: handle})
}
