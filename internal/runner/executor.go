package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Execution is the captured outcome of one command.
type Execution struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor abstracts how a generator command is started, so tests can
// substitute fakes for the real binaries.
//
// Execute runs command with args inside dir. A non-zero exit is reported
// through Execution.ExitCode together with a non-nil error.
type Executor interface {
	Execute(ctx context.Context, dir, command string, args []string) (Execution, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct{}

func (ExecExecutor) Execute(ctx context.Context, dir, command string, args []string) (Execution, error) {
	if _, err := exec.LookPath(command); err != nil {
		return Execution{ExitCode: -1}, fmt.Errorf("%w: %w", ErrExecutableNotFound, err)
	}

	// #nosec G204 -- generator commands come from the operator's configuration
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Execution{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		return res, fmt.Errorf("%w: %w", ErrGeneratorFailed, err)
	}
	return res, nil
}
