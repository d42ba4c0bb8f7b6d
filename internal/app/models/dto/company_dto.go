package dto

import "github.com/yigit/jobly/internal/app/models"

// CreateCompanyRequest is the body of POST /companies
type CreateCompanyRequest struct {
	Handle       string  `json:"handle" binding:"required,max=25,handle" example:"c1"`
	Name         string  `json:"name" binding:"required" example:"C1"`
	Description  string  `json:"description" binding:"required" example:"Desc1"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0,max=2147483647" example:"1"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url" example:"http://c1.img"`
}

// ToModel converts the request into a company record
func (r CreateCompanyRequest) ToModel() *models.Company {
	return &models.Company{
		Handle:       r.Handle,
		Name:         r.Name,
		Description:  r.Description,
		NumEmployees: r.NumEmployees,
		LogoURL:      r.LogoURL,
	}
}

// UpdateCompanyRequest is the body of PATCH /companies/:handle. The handle
// cannot be changed, so it is not accepted here.
type UpdateCompanyRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int    `json:"numEmployees" binding:"omitempty,min=0,max=2147483647"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// ToModel converts the request into a partial update
func (r UpdateCompanyRequest) ToModel() models.CompanyUpdate {
	return models.CompanyUpdate{
		Name:         r.Name,
		Description:  r.Description,
		NumEmployees: r.NumEmployees,
		LogoURL:      r.LogoURL,
	}
}

// CompanyResponse wraps a single company
type CompanyResponse struct {
	Company *models.Company `json:"company"`
}

// CompaniesResponse wraps a company listing
type CompaniesResponse struct {
	Companies []*models.Company `json:"companies"`
}
