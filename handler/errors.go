// errors.go is file declaring kinds of failure, each kind is mapped to exit code of process

package handler

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrNodeIdentity     = errors.New("node identity error")
	ErrProbe            = errors.New("health check command error")
	ErrCatalogProtocol  = errors.New("catalog protocol error")
	ErrCatalogTransport = errors.New("catalog transport error")
	ErrTimeout          = errors.New("timeout error")
)

const (
	ExitOK = iota
	ExitUnknown
	ExitConfiguration
	ExitNodeIdentity
	ExitProbe
	ExitCatalogProtocol
	ExitCatalogTransport
	ExitTimeout
)

var exitCodes = []struct {
	kind error
	code int
}{
	{ErrConfiguration, ExitConfiguration},
	{ErrNodeIdentity, ExitNodeIdentity},
	{ErrProbe, ExitProbe},
	{ErrCatalogProtocol, ExitCatalogProtocol},
	{ErrCatalogTransport, ExitCatalogTransport},
	{ErrTimeout, ExitTimeout},
}

// kindError keep cause in chain while matching kind with errors.Is
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%v: %v", e.kind, e.err)
}

func (e *kindError) Unwrap() error {
	return e.err
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// WithKind wrap err as kind of failure, nil err returns nil
func WithKind(kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// ExitCode return exit code of process for err
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return ExitUnknown
}
