// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: toolchain :: shell-out to cmake and make
//
//  Runner is the seam between the build orchestration and the real tools;
//  tests substitute a recording fake.
// ─────────────────────────────────────────────────────────────────────────────

package toolchain

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Invocation is one external tool call.
type Invocation struct {
	Binary string
	Args   []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited environment of this call only.
	Env []string
}

// String renders the invocation as a shell-like command line.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Env)+1+len(inv.Args))
	parts = append(parts, inv.Env...)
	parts = append(parts, inv.Binary)
	parts = append(parts, inv.Args...)
	return strings.Join(parts, " ")
}

// Result is what a finished invocation produced.
type Result struct {
	Stdout string
	Stderr string
}

// Warnings returns the lines of the tool output that mention a warning.
func (r *Result) Warnings() []string {
	if r == nil {
		return nil
	}
	var w []string
	for _, line := range strings.Split(r.Stdout+"\n"+r.Stderr, "\n") {
		if strings.Contains(strings.ToLower(line), "warning") {
			w = append(w, strings.TrimSpace(line))
		}
	}
	return w
}

// ExitError is returned when the tool ran but did not exit with status 0.
type ExitError struct {
	Binary string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Binary, e.Code)
}

// Runner executes invocations synchronously.
type Runner interface {
	Run(inv Invocation) (*Result, error)
}

// Exec runs invocations as real subprocesses.
type Exec struct{}

// NewExec returns a Runner backed by os/exec.
func NewExec() *Exec {
	return &Exec{}
}

// Run starts the tool, waits for it and collects its output. A non-zero
// exit yields an *ExitError carrying the raw stderr.
func (x *Exec) Run(inv Invocation) (*Result, error) {
	cmd := exec.Command(inv.Binary, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, &ExitError{Binary: inv.Binary, Code: exitErr.ExitCode(), Stderr: res.Stderr}
	}
	return res, fmt.Errorf("cannot run %s: %w", inv.Binary, err)
}

// Installed reports whether binary can be found on PATH (or at the given
// path).
func Installed(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
