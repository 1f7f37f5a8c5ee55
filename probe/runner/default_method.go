// default_method.go is file to declare method of default struct

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// Run execute command line synchronously, exit status of command is not regarded as error
func (d *_default) Run(ctx context.Context, commandLine string) (output string, err error) {
	program, args, err := splitCommandLine(commandLine)
	if err != nil {
		return
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	entry := d.logger.WithFields(logrus.Fields{
		"program": program,
		"args":    args,
	})

	runErr := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr) && ctx.Err() == nil:
		entry = entry.WithField("exit_code", exitErr.ExitCode())
	default:
		err = fmt.Errorf("%w (command: %s), err: %v", ErrUnableToExecute, commandLine, runErr)
		return
	}

	if stderr.Len() != 0 {
		entry = entry.WithField("stderr", stderr.String())
	}
	entry.Debugf("health check command finished, stdout: %q", stdout.String())

	if !utf8.Valid(stdout.Bytes()) {
		err = fmt.Errorf("%w (command: %s)", ErrInvalidOutput, commandLine)
		return
	}

	output = stdout.String()
	return
}

// split command line on runs of whitespace into program name & arguments, quoting is not supported
func splitCommandLine(commandLine string) (program string, args []string, err error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		err = ErrEmptyCommand
		return
	}

	program, args = fields[0], fields[1:]
	return
}
