// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: errs :: error kinds and process exit codes
//
//  Every failure a command can end with is an *Error carrying a Kind.
//  The Kind decides the exit code, so scripts can tell "forgot to build"
//  apart from "cmake failed" without scraping text.
// ─────────────────────────────────────────────────────────────────────────────

package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindUnknownCommand
	KindMissingArgument
	KindExcessArguments
	KindPathNotFound
	KindDescriptorNotFound
	KindNoExecutableDeclared
	KindArtifactNotFound
	KindExternalTool
	KindTransfer
	KindConfigRead
	KindConfigWrite
)

var kindNames = map[Kind]string{
	KindUnknown:              "Error",
	KindUsage:                "UsageError",
	KindUnknownCommand:       "UnknownCommandError",
	KindMissingArgument:      "MissingArgumentError",
	KindExcessArguments:      "ExcessArgumentsError",
	KindPathNotFound:         "PathNotFoundError",
	KindDescriptorNotFound:   "DescriptorNotFoundError",
	KindNoExecutableDeclared: "NoExecutableDeclaredError",
	KindArtifactNotFound:     "ArtifactNotFoundError",
	KindExternalTool:         "ExternalToolFailure",
	KindTransfer:             "TransferError",
	KindConfigRead:           "ConfigReadError",
	KindConfigWrite:          "ConfigWriteError",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Exit codes. Stable: scripts depend on them.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitPath     = 3
	ExitTarget   = 4
	ExitArtifact = 5
	ExitTool     = 6
	ExitTransfer = 7
	ExitConfig   = 8
)

// Error is the single error type returned by picotools operations.
type Error struct {
	Kind    Kind
	Message string
	// Path is the filesystem path the failure is about, if any.
	Path string
	// Tool and Diagnostic name the external tool that failed and hold its
	// raw output, verbatim.
	Tool       string
	Diagnostic string
	Err        error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by Kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Has reports whether err carries the given kind.
func Has(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindUsage, KindUnknownCommand, KindMissingArgument, KindExcessArguments:
		return ExitUsage
	case KindPathNotFound:
		return ExitPath
	case KindDescriptorNotFound, KindNoExecutableDeclared:
		return ExitTarget
	case KindArtifactNotFound:
		return ExitArtifact
	case KindExternalTool:
		return ExitTool
	case KindTransfer:
		return ExitTransfer
	case KindConfigRead, KindConfigWrite:
		return ExitConfig
	default:
		return ExitFailure
	}
}
