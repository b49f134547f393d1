package service

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict: record already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrMergeConflict = errors.New("merge conflict")
	ErrUpstream      = errors.New("upstream unavailable")
)
