package core

import (
	"errors"
)

var (
	ErrInvalidAttribute = errors.New("invalid attribute")
	ErrMissingNormals   = errors.New("geometry has no normal attribute")
	ErrMissingTexcoords = errors.New("geometry has no texcoord attribute")
	ErrUpload           = errors.New("buffer upload failed")
	ErrConfig           = errors.New("invalid configuration")
	ErrParse            = errors.New("failed to parse asset")
	ErrRegistryFull     = errors.New("geometry registry is full")
	ErrNotFound         = errors.New("not found")
	ErrExists           = errors.New("already exists")
	ErrClosed           = errors.New("already closed")
	ErrUnknown          = errors.New("unknown")
)
