package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/db"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/dberrors"
	"github.com/yigit/jobly/internal/pkg/logger"
	"github.com/yigit/jobly/internal/pkg/sqlbuild"
)

var userColumns = []string{"username", "first_name", "last_name", "email", "is_admin"}

var userUpdateColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// UserRepository handles user and application database operations
type UserRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{
		db: conn,
		sb: statementBuilder(),
	}
}

func noUser(username string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("No user: %s", username))
}

// DuplicateUsername is the error for a taken username
func DuplicateUsername(username string) error {
	return apperrors.NewBadRequestError(fmt.Sprintf("Duplicate username: %s", username))
}

// ErrAlreadyApplied is returned for a second application to the same job
var ErrAlreadyApplied = apperrors.NewBadRequestError("You have already applied to this job")

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user whose password is already hashed
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("username", "password", "first_name", "last_name", "email", "is_admin").
		Values(user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsAdmin).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	created, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, DuplicateUsername(user.Username)
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error creating user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Exists reports whether a username is taken
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	query, args, err := r.sb.Select("username").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build user exists query: %w", err)
	}

	var found string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Str("username", username).Msg("Error checking username")
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return true, nil
}

// GetWithPassword returns the user including the password hash, for login
func (r *UserRepository) GetWithPassword(ctx context.Context, username string) (*models.User, error) {
	query, args, err := r.sb.Select(append([]string{"password"}, userColumns...)...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u models.User
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&u.Password, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noUser(username)
		}
		logger.Error().Err(err).Str("username", username).Msg("Error getting user credentials")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return &u, nil
}

// FindAll returns every user ordered by username
func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	query, args, err := r.sb.Select(userColumns...).From("users").OrderBy("username").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Get returns a user and the ids of the jobs they applied to
func (r *UserRepository) Get(ctx context.Context, username string) (*models.UserDetail, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noUser(username)
		}
		logger.Error().Err(err).Str("username", username).Msg("Error getting user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	jobs, err := r.appliedJobIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.UserDetail{User: *user, Jobs: jobs}, nil
}

func (r *UserRepository) appliedJobIDs(ctx context.Context, username string) ([]int64, error) {
	query, args, err := r.sb.Select("job_id").
		From("applications").
		Where(squirrel.Eq{"username": username}).
		OrderBy("job_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error querying applications")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return ids, nil
}

// Update applies a partial update. A password in update must already be hashed.
func (r *UserRepository) Update(ctx context.Context, username string, update models.UserUpdate) (*models.User, error) {
	set, err := sqlbuild.PartialUpdate(update.Fields(), userUpdateColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE username = %s RETURNING %s",
		set.Columns, set.KeyPlaceholder(), strings.Join(userColumns, ", "))

	user, err := scanUser(r.db.QueryRow(ctx, query, set.Args(username)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, noUser(username)
		}
		logger.Error().Err(err).Str("username", username).Msg("Error updating user")
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return user, nil
}

// Remove deletes a user and, by cascade, their applications
func (r *UserRepository) Remove(ctx context.Context, username string) error {
	query, args, err := r.sb.Delete("users").Where(squirrel.Eq{"username": username}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return noUser(username)
	}
	return nil
}

// CreateApplication inserts the (username, job) pair. The primary key on the
// pair turns a concurrent duplicate into ErrAlreadyApplied.
func (r *UserRepository) CreateApplication(ctx context.Context, username string, jobID int64) (*models.Application, error) {
	query, args, err := r.sb.Insert("applications").
		Columns("username", "job_id").
		Values(username, jobID).
		Suffix("RETURNING username, job_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build apply query: %w", err)
	}

	var app models.Application
	if err := r.db.QueryRow(ctx, query, args...).Scan(&app.Username, &app.JobID); err != nil {
		switch {
		case dberrors.IsUniqueViolation(err):
			return nil, ErrAlreadyApplied
		case dberrors.IsForeignKeyViolation(err):
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("No user or job: %s, %d", username, jobID))
		}
		logger.Error().Err(err).Str("username", username).Int64("jobID", jobID).Msg("Error creating application")
		return nil, fmt.Errorf("error creating application: %w", err)
	}
	return &app, nil
}

// ApplicationExists reports whether the user already applied to the job
func (r *UserRepository) ApplicationExists(ctx context.Context, username string, jobID int64) (bool, error) {
	query, args, err := r.sb.Select("job_id").
		From("applications").
		Where(squirrel.Eq{"username": username, "job_id": jobID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build application exists query: %w", err)
	}

	var found int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking application: %w", err)
	}
	return true, nil
}
