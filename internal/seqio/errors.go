package seqio

import "errors"

var errIsDir = errors.New("is a directory")

// ErrBadGzip marks a source that exists but whose gzip stream cannot be read.
var ErrBadGzip = errors.New("unreadable gzip content")
