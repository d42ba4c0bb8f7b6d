package models

import "github.com/yigit/jobly/internal/pkg/sqlbuild"

// Job is an opening posted by a company.
// Equity is accepted as a number but stored as NUMERIC and returned as its
// decimal text, e.g. "0.1".
type Job struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Salary        *int    `json:"salary"`
	Equity        *string `json:"equity"`
	CompanyHandle string  `json:"company_handle"`
}

// NewJob is what a caller supplies to create a job
type NewJob struct {
	Title         string
	Salary        *int
	Equity        *float64
	CompanyHandle string
}

// JobFilter narrows a job listing. HasEquity false means no constraint.
type JobFilter struct {
	Title         *string
	MinSalary     *int
	HasEquity     bool
	CompanyHandle *string
}

// JobUpdate is a partial update; id and company never change
type JobUpdate struct {
	Title  *string
	Salary *int
	Equity *float64
}

// Fields lists the supplied changes in title, salary, equity order
func (u JobUpdate) Fields() []sqlbuild.Field {
	var c changeSet
	if u.Title != nil {
		c = c.add("title", *u.Title)
	}
	if u.Salary != nil {
		c = c.add("salary", *u.Salary)
	}
	if u.Equity != nil {
		c = c.add("equity", *u.Equity)
	}
	return c
}
