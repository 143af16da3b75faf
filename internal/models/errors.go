package models

import "errors"

var (
	ErrNotFound   = errors.New("file not found")
	ErrNotAFile   = errors.New("not a regular file")
	ErrUnreadable = errors.New("file unreadable")
	ErrForbidden  = errors.New("path forbidden")
	ErrShortRead  = errors.New("short read")
)
