package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/jobly/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CompanyRepository *CompanyRepository
	JobRepository     *JobRepository
	UserRepository    *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		CompanyRepository: NewCompanyRepository(conn),
		JobRepository:     NewJobRepository(conn),
		UserRepository:    NewUserRepository(conn),
	}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches term anywhere in the column. Wildcards in term are
// escaped with ILIKE's default escape character so they match literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
