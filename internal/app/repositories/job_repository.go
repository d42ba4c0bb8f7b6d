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

// equity is NUMERIC; selecting its text form keeps the exact decimal
var jobColumns = []string{"id", "title", "salary", "equity::text", "company_handle"}

// JobRepository handles job database operations
type JobRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(conn db.DBTX) *JobRepository {
	return &JobRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func noJob(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("No job: %d", id))
}

func scanJob(row rowScanner) (*models.Job, error) {
	var (
		j      models.Job
		salary sql.NullInt64
		equity sql.NullString
	)
	if err := row.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	j.Salary = helpers.IntPtr(salary)
	j.Equity = helpers.StringPtr(equity)
	return &j, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// Create inserts a job. An unknown company handle is reported as not found.
func (r *JobRepository) Create(ctx context.Context, job models.NewJob) (*models.Job, error) {
	query, args, err := r.sb.Insert("jobs").
		Columns("title", "salary", "equity", "company_handle").
		Values(job.Title, helpers.GetNullInt(job.Salary), nullFloat(job.Equity), job.CompanyHandle).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create job query: %w", err)
	}

	created, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, noCompany(job.CompanyHandle)
		}
		logger.Error().Err(err).Str("companyHandle", job.CompanyHandle).Msg("Error creating job")
		return nil, fmt.Errorf("error creating job: %w", err)
	}
	return created, nil
}

// Get retrieves a job by id
func (r *JobRepository) Get(ctx context.Context, id int64) (*models.Job, error) {
	query, args, err := r.sb.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noJob(id)
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error getting job")
		return nil, fmt.Errorf("error getting job: %w", err)
	}
	return job, nil
}

// jobListQuery appends one predicate per supplied filter. Bound parameters
// follow title, salary, handle order; the equity flag binds nothing.
func (r *JobRepository) jobListQuery(filter models.JobFilter) squirrel.SelectBuilder {
	q := r.sb.Select(jobColumns...).From("jobs")
	if filter.Title != nil {
		q = q.Where(squirrel.ILike{"title": containsPattern(*filter.Title)})
	}
	if filter.MinSalary != nil {
		q = q.Where(squirrel.GtOrEq{"salary": *filter.MinSalary})
	}
	if filter.HasEquity {
		q = q.Where("equity > 0")
	}
	if filter.CompanyHandle != nil {
		q = q.Where(squirrel.Eq{"company_handle": *filter.CompanyHandle})
	}
	return q.OrderBy("title")
}

// List returns jobs matching filter, ordered by title
func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]*models.Job, error) {
	query, args, err := r.jobListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list jobs query")
		return nil, fmt.Errorf("error querying jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating job rows")
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

// Update applies a partial update of title, salary and equity
func (r *JobRepository) Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error) {
	set, err := sqlbuild.PartialUpdate(update.Fields(), nil)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = %s RETURNING %s",
		set.Columns, set.KeyPlaceholder(), strings.Join(jobColumns, ", "))

	job, err := scanJob(r.db.QueryRow(ctx, query, set.Args(id)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noJob(id)
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error updating job")
		return nil, fmt.Errorf("error updating job: %w", err)
	}
	return job, nil
}

// Remove deletes a job
func (r *JobRepository) Remove(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("jobs").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error deleting job")
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return noJob(id)
	}
	return nil
}
