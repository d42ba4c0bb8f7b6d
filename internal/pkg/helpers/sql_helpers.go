package helpers

import "database/sql"

// GetNullString converts a string pointer to sql.NullString.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// GetNullInt converts an int pointer to sql.NullInt64.
func GetNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// StringPtr returns nil for a NULL column, otherwise a pointer to its value.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// IntPtr returns nil for a NULL column, otherwise a pointer to its value.
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}
