package engine

import (
	"context"
	"errors"
	"os/exec"
	"time"
	"unicode/utf8"

	"github.com/ZaguanLabs/gotrans"
)

// DefaultBinary is the usual install path of translate-shell.
const DefaultBinary = "/usr/bin/trans"

// waitDelay bounds how long a killed command may keep its output pipes open
// through child processes.
const waitDelay = time.Second

// ShellInvoker runs translate-shell once per engine attempt.
type ShellInvoker struct {
	binary  string
	timeout time.Duration
}

// ShellConfig holds configuration for the shell invoker.
type ShellConfig struct {
	Binary  string        // Path to the translate-shell binary (default: /usr/bin/trans)
	Timeout time.Duration // Upper bound for one invocation (0 = only the caller's deadline)
}

// NewShellInvoker creates a new shell invoker.
func NewShellInvoker(cfg ShellConfig) *ShellInvoker {
	binary := cfg.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	return &ShellInvoker{
		binary:  binary,
		timeout: cfg.Timeout,
	}
}

// Invoke runs "<binary> -e <engine> -b :<lang> <word>" and returns its stdout.
// The exit status is ignored. A failed start, a timeout, empty output or
// output that is not valid UTF-8 are reported as *gotrans.EngineError.
func (s *ShellInvoker) Invoke(ctx context.Context, engine gotrans.EngineID, lang, word string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// #nosec G204 - arguments are passed directly, no shell is involved
	cmd := exec.CommandContext(ctx, s.binary, "-e", string(engine), "-b", ":"+lang, word)
	cmd.WaitDelay = waitDelay
	out, err := cmd.Output()

	// Only stdout decides: translate-shell may exit non-zero after printing a
	// usable translation.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		err = nil
	}
	if err != nil {
		return "", &gotrans.EngineError{
			Engine:  engine,
			Message: "command failed",
			Cause:   err,
		}
	}

	if len(out) == 0 {
		return "", &gotrans.EngineError{Engine: engine, Message: "empty output"}
	}

	if !utf8.Valid(out) {
		return "", &gotrans.EngineError{Engine: engine, Message: "output is not valid UTF-8"}
	}

	return string(out), nil
}

// Binary returns the path of the translate-shell binary.
func (s *ShellInvoker) Binary() string {
	return s.binary
}

// Verify ShellInvoker implements Invoker
var _ Invoker = (*ShellInvoker)(nil)
