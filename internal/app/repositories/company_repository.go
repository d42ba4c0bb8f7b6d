package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/db"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/dberrors"
	"github.com/yigit/jobly/internal/pkg/helpers"
	"github.com/yigit/jobly/internal/pkg/logger"
	"github.com/yigit/jobly/internal/pkg/sqlbuild"
)

var companyColumns = []string{"handle", "name", "description", "num_employees", "logo_url"}

// companyUpdateColumns maps JSON names to columns where they differ
var companyUpdateColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(conn db.DBTX) *CompanyRepository {
	return &CompanyRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func noCompany(handle string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("No company: %s", handle))
}

func scanCompany(row rowScanner) (*models.Company, error) {
	var (
		c            models.Company
		numEmployees sql.NullInt64
		logoURL      sql.NullString
	)
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &numEmployees, &logoURL); err != nil {
		return nil, err
	}
	c.NumEmployees = helpers.IntPtr(numEmployees)
	c.LogoURL = helpers.StringPtr(logoURL)
	return &c, nil
}

// Create inserts a company. A taken handle or name is a bad request.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	query, args, err := r.sb.Insert("companies").
		Columns(companyColumns...).
		Values(company.Handle, company.Name, company.Description,
			helpers.GetNullInt(company.NumEmployees), helpers.GetNullString(company.LogoURL)).
		Suffix("RETURNING " + strings.Join(companyColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create company query: %w", err)
	}

	created, err := scanCompany(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("Duplicate company: %s", company.Handle))
		}
		logger.Error().Err(err).Str("handle", company.Handle).Msg("Error creating company")
		return nil, fmt.Errorf("error creating company: %w", err)
	}
	return created, nil
}

// Get retrieves a company by handle
func (r *CompanyRepository) Get(ctx context.Context, handle string) (*models.Company, error) {
	query, args, err := r.sb.Select(companyColumns...).
		From("companies").
		Where(squirrel.Eq{"handle": handle}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	company, err := scanCompany(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noCompany(handle)
		}
		logger.Error().Err(err).Str("handle", handle).Msg("Error getting company")
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	return company, nil
}

// companyListQuery appends one predicate per supplied filter, in name, min, max order
func (r *CompanyRepository) companyListQuery(filter models.CompanyFilter) squirrel.SelectBuilder {
	q := r.sb.Select(companyColumns...).From("companies")
	if filter.Name != nil {
		q = q.Where(squirrel.ILike{"name": containsPattern(*filter.Name)})
	}
	if filter.MinEmployees != nil {
		q = q.Where(squirrel.GtOrEq{"num_employees": *filter.MinEmployees})
	}
	if filter.MaxEmployees != nil {
		q = q.Where(squirrel.LtOrEq{"num_employees": *filter.MaxEmployees})
	}
	return q.OrderBy("name")
}

// List returns companies matching filter, ordered by name
func (r *CompanyRepository) List(ctx context.Context, filter models.CompanyFilter) ([]*models.Company, error) {
	query, args, err := r.companyListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list companies query")
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating company rows")
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

// Update applies a partial update and returns the new row
func (r *CompanyRepository) Update(ctx context.Context, handle string, update models.CompanyUpdate) (*models.Company, error) {
	set, err := sqlbuild.PartialUpdate(update.Fields(), companyUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE companies SET %s WHERE handle = %s RETURNING %s",
		set.Columns, set.KeyPlaceholder(), strings.Join(companyColumns, ", "))

	company, err := scanCompany(r.db.QueryRow(ctx, query, set.Args(handle)...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, noCompany(handle)
		case dberrors.IsUniqueViolation(err):
			return nil, apperrors.NewBadRequestError("Duplicate company name")
		}
		logger.Error().Err(err).Str("handle", handle).Msg("Error updating company")
		return nil, fmt.Errorf("error updating company: %w", err)
	}
	return company, nil
}

// Remove deletes a company and, by cascade, its jobs
func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	query, args, err := r.sb.Delete("companies").Where(squirrel.Eq{"handle": handle}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("handle", handle).Msg("Error deleting company")
		return fmt.Errorf("error deleting company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return noCompany(handle)
	}
	return nil
}
