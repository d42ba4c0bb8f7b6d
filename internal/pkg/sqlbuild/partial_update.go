// Package sqlbuild builds the SET clause of partial UPDATE statements.
package sqlbuild

import (
	"fmt"
	"strings"

	"github.com/yigit/jobly/internal/pkg/apperrors"
)

// Field is one caller-supplied change: a logical field name and its new value
type Field struct {
	Name  string
	Value any
}

// SetClause is the column assignment list of an UPDATE and its bound values.
type SetClause struct {
	Columns string
	values  []any
}

// Values returns a copy of the bound values in placeholder order
func (s SetClause) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// KeyPlaceholder is the placeholder the caller uses for the row key
func (s SetClause) KeyPlaceholder() string {
	return fmt.Sprintf("$%d", len(s.values)+1)
}

// Args returns the bound values followed by the row key
func (s SetClause) Args(key any) []any {
	return append(s.Values(), key)
}

// PartialUpdate turns an ordered set of changes into `"col"=$n` assignments.
// columns translates logical names to column names; names missing from it are
// used as-is. An empty change set is a bad request.
func PartialUpdate(fields []Field, columns map[string]string) (SetClause, error) {
	if len(fields) == 0 {
		return SetClause{}, apperrors.NewBadRequestError("No data")
	}

	assignments := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	for i, f := range fields {
		column, ok := columns[f.Name]
		if !ok {
			column = f.Name
		}
		assignments = append(assignments, fmt.Sprintf("%q=$%d", column, i+1))
		values = append(values, f.Value)
	}

	return SetClause{
		Columns: strings.Join(assignments, ", "),
		values:  values,
	}, nil
}
