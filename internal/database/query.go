package database

import (
	"fmt"

	"gorm.io/gorm"
)

// QueryError wraps a database statement failure. Zero matching rows is not a
// failure and never produces a QueryError.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Rows executes a parameterized statement expected to return rows and returns
// them as ordered column-name to value maps. An empty result is an empty
// slice, not an error.
func Rows(db *gorm.DB, query string, args ...any) ([]map[string]any, error) {
	if db == nil {
		return nil, &QueryError{Query: query, Err: gorm.ErrInvalidDB}
	}
	rows := []map[string]any{}
	if err := db.Raw(query, args...).Find(&rows).Error; err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	return rows, nil
}

// Exec executes a parameterized statement without a result set.
func Exec(db *gorm.DB, query string, args ...any) error {
	if db == nil {
		return &QueryError{Query: query, Err: gorm.ErrInvalidDB}
	}
	if err := db.Exec(query, args...).Error; err != nil {
		return &QueryError{Query: query, Err: err}
	}
	return nil
}
