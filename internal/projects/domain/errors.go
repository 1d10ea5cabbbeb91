package domain

import "errors"

var (
	ErrNotFound     = errors.New("project not found")
	ErrNameRequired = errors.New("project name required")
	ErrNoClearFlag  = errors.New("at least one clear option must be specified")
)
