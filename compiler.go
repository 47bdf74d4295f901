package typst

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Compiler invokes the external typst binary. The formatter itself never
// touches it; it exists so produced source can be handed to the compiler
// without every caller rewriting the same exec plumbing.
type Compiler struct {
	// Path is the executable to run. Empty means "typst".
	Path string

	// Env holds extra KEY=VALUE entries appended to the process
	// environment.
	Env []string

	// IgnoreFailure suppresses the error for a non-zero exit status. The
	// status is still returned.
	IgnoreFailure bool
}

// FontPathEnv builds the TYPST_FONT_PATHS environment entry for dirs,
// suitable for [Compiler].Env.
func FontPathEnv(dirs ...string) string {
	return "TYPST_FONT_PATHS=" + strings.Join(dirs, string(os.PathListSeparator))
}

// Run executes the compiler with args and returns its exit status and
// captured output. A non-zero exit status is returned as both the status and
// an [exec.ExitError] unless IgnoreFailure is set.
func (c *Compiler) Run(ctx context.Context, args ...string) (exit int, stdout, stderr string, err error) {
	path := c.Path
	if path == "" {
		path = "typst"
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), c.Env...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exit = exitErr.ExitCode()
		if c.IgnoreFailure {
			err = nil
		}
	}
	return exit, outBuf.String(), errBuf.String(), err
}
