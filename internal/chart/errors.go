package chart

import (
	"errors"
	"fmt"
)

var (
	ErrNotMounted      = errors.New("chart is not mounted")
	ErrNotBound        = errors.New("no data bound to chart")
	ErrAlreadyBound    = errors.New("data already bound for this mount")
	ErrInvalidOption   = errors.New("metric is not selectable on this axis")
	ErrInvalidViewport = errors.New("viewport too small for plot area")
)

// RenderError represents a failed operation against a chart
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error during %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func renderError(op string, err error) *RenderError {
	return &RenderError{Op: op, Err: err}
}
