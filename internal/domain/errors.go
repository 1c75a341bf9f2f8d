package domain

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskConflict     = errors.New("task already exists")
	ErrStoreUnavailable = errors.New("task store unavailable")
)
