// Package tool runs the external documentation binaries (apropos, man)
// and classifies their failures.
package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrToolNotFound reports that the external binary is not installed.
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolFailed reports that the external binary exited with an error.
	ErrToolFailed = errors.New("tool failed")
)

// Error carries the binary, the classification and whatever the tool
// printed on stderr.
type Error struct {
	Binary string
	Kind   error
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Binary, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Is lets errors.Is match the classification sentinel.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// Runner executes one binary. The zero Timeout means no timeout.
type Runner struct {
	Binary  string
	Env     []string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run executes the binary with args and returns its stdout.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Binary, args...)
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	cmd.WaitDelay = 5 * time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger().Debug("exec",
		"binary", r.Binary,
		"args", args,
		"bytes", stdout.Len(),
		"duration", time.Since(start),
		"error", err,
	)
	if err != nil {
		return stdout.Bytes(), classify(r.Binary, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func classify(binary string, err error, stderr string) error {
	kind := ErrToolFailed
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		kind = ErrToolNotFound
	}
	return &Error{
		Binary: binary,
		Kind:   kind,
		Stderr: strings.TrimSpace(stderr),
		Err:    err,
	}
}
