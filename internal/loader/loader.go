// internal/loader/loader.go
package loader

import (
	"context"
	"fmt"

	"census/internal/models"
)

// Loader defines the interface for the different dataset sources
type Loader interface {
	// Method returns the loader type (e.g., "csv", "zip")
	Method() string

	// Load reads every record from the resource at path
	Load(ctx context.Context, path string) ([]models.Record, error)

	// Cleanup releases any temporary resources
	Cleanup() error
}

// Load stages reported in LoadError
const (
	StageFetch    = "fetch"
	StageExtract  = "extract"
	StageHeader   = "header"
	StageParse    = "parse"
	StageValidate = "validate"
)

// LoadError represents a dataset loading failure at a specific stage
type LoadError struct {
	Stage string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error at %s stage for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError
func NewLoadError(stage, path string, err error) *LoadError {
	return &LoadError{
		Stage: stage,
		Path:  path,
		Err:   err,
	}
}
