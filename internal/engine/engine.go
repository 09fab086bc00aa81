// Package engine runs the external decode command.
//
// The command is started once per frame. It receives {"frame": "..."} on
// stdin and answers with a JSON value on stdout and exit status 0, or a
// diagnostic on stderr and a non-zero exit status.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Rorical/ezframe/internal/frames"
)

// Decoder turns a frame into a decoded value tree.
type Decoder interface {
	Decode(ctx context.Context, frame string) (any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ctx context.Context, frame string) (any, error)

func (f DecoderFunc) Decode(ctx context.Context, frame string) (any, error) {
	return f(ctx, frame)
}

// Request is the payload written to the command's stdin.
type Request struct {
	Frame string `json:"frame"`
}

// CommandError describes a failed decode command run. Error returns the
// diagnostic text only, so it can be shown to the user as-is.
type CommandError struct {
	ExitCode int
	Message  string
	Err      error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ErrInvalidOutput wraps decode output that is not valid JSON.
var ErrInvalidOutput = errors.New("decode command returned invalid output")

// Command runs an executable as the decode engine.
type Command struct {
	Path     string
	Args     []string
	Env      []string      // Appended to the current environment
	Timeout  time.Duration // Zero means no timeout
	SpecPath func() string // Optional; passed as --spec when non-empty
}

func (c *Command) Decode(ctx context.Context, frame string) (any, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	payload, err := json.Marshal(Request{Frame: frame})
	if err != nil {
		return nil, err
	}

	args := append([]string{}, c.Args...)
	if c.SpecPath != nil {
		if spec := c.SpecPath(); spec != "" {
			args = append(args, "--spec", spec)
		}
	}

	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdin = bytes.NewReader(payload)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, c.commandError(ctx, err, stderr.String())
	}

	var value any
	if err := json.Unmarshal(stdout.Bytes(), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	return value, nil
}

func (c *Command) commandError(ctx context.Context, err error, stderr string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &CommandError{
			ExitCode: -1,
			Message:  fmt.Sprintf("decode command timed out after %s", c.Timeout),
			Err:      ctx.Err(),
		}
	}

	ce := &CommandError{ExitCode: -1, Message: strings.TrimSpace(stderr), Err: err}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		ce.ExitCode = exitErr.ExitCode()
	}
	if ce.Message == "" {
		ce.Message = err.Error()
	}
	return ce
}

// BatchResult is the outcome of decoding one frame of a batch.
type BatchResult struct {
	Frame string `json:"frame"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// DecodeBatch decodes every frame found in text, in order. Failures are
// recorded per frame and do not stop the batch.
func DecodeBatch(ctx context.Context, d Decoder, text string) []BatchResult {
	list := frames.ParseFrames(text)
	results := make([]BatchResult, 0, len(list))
	for _, frame := range list {
		r := BatchResult{Frame: frame}
		value, err := d.Decode(ctx, frame)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Value = value
		}
		results = append(results, r)
	}
	return results
}
