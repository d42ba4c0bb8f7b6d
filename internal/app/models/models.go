// Package models holds the records the API stores and returns, the filters
// used to list them and the sparse change sets used to patch them.
package models

import "github.com/yigit/jobly/internal/pkg/sqlbuild"

// changeSet accumulates the fields a caller actually supplied, in order
type changeSet []sqlbuild.Field

func (c changeSet) add(name string, value any) changeSet {
	return append(c, sqlbuild.Field{Name: name, Value: value})
}
