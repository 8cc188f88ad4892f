package client

import "errors"

var (
	ErrUsage            = errors.New("invalid command line")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
