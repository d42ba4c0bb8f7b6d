package models

import (
	"fmt"

	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/sqlbuild"
)

// Company is an employer, keyed by its handle
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyFilter narrows a company listing; nil fields do not filter
type CompanyFilter struct {
	Name         *string
	MinEmployees *int
	MaxEmployees *int
}

// Validate rejects an inverted employee range
func (f CompanyFilter) Validate() error {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return apperrors.NewBadRequestError(fmt.Sprintf(
			"minEmployees (%d) cannot be greater than maxEmployees (%d)", *f.MinEmployees, *f.MaxEmployees))
	}
	return nil
}

// CompanyUpdate is a partial update; the handle never changes
type CompanyUpdate struct {
	Name         *string
	Description  *string
	NumEmployees *int
	LogoURL      *string
}

// Fields lists the supplied changes under their JSON names
func (u CompanyUpdate) Fields() []sqlbuild.Field {
	var c changeSet
	if u.Name != nil {
		c = c.add("name", *u.Name)
	}
	if u.Description != nil {
		c = c.add("description", *u.Description)
	}
	if u.NumEmployees != nil {
		c = c.add("numEmployees", *u.NumEmployees)
	}
	if u.LogoURL != nil {
		c = c.add("logoUrl", *u.LogoURL)
	}
	return c
}
