package runner

import "errors"

var (
	ErrEmptyCommand    = errors.New("command line is empty, please set program name at least")
	ErrUnableToExecute = errors.New("unable to execute health check command")
	ErrInvalidOutput   = errors.New("health check command output is not valid UTF-8 text")
)
