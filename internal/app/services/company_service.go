package services

import (
	"context"
	"strings"

	"github.com/yigit/jobly/internal/app/models"
)

// CompanyService defines the interface for company-related operations
type CompanyService interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Get(ctx context.Context, handle string) (*models.Company, error)
	List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error)
	Update(ctx context.Context, handle string, update models.CompanyUpdate) (*models.Company, error)
	Remove(ctx context.Context, handle string) error
}

type companyServiceImpl struct {
	companies CompanyStore
}

// NewCompanyService creates a new company service instance
func NewCompanyService(companies CompanyStore) CompanyService {
	return &companyServiceImpl{companies: companies}
}

// Create stores a company under its lower-cased handle
func (s *companyServiceImpl) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.Handle = strings.ToLower(strings.TrimSpace(company.Handle))
	return s.companies.Create(ctx, company)
}

func (s *companyServiceImpl) Get(ctx context.Context, handle string) (*models.Company, error) {
	return s.companies.Get(ctx, handle)
}

// List validates the filter before any query is built
func (s *companyServiceImpl) List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.companies.List(ctx, filter)
}

func (s *companyServiceImpl) Update(ctx context.Context, handle string, update models.CompanyUpdate) (*models.Company, error) {
	return s.companies.Update(ctx, handle, update)
}

func (s *companyServiceImpl) Remove(ctx context.Context, handle string) error {
	return s.companies.Remove(ctx, handle)
}
