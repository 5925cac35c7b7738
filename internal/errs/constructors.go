package errs

import "fmt"

func Usage(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

func UnknownCommand(name string) *Error {
	return &Error{Kind: KindUnknownCommand, Message: fmt.Sprintf("unknown command %q", name)}
}

func MissingArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindMissingArgument, Message: fmt.Sprintf(format, args...)}
}

func ExcessArguments(format string, args ...interface{}) *Error {
	return &Error{Kind: KindExcessArguments, Message: fmt.Sprintf(format, args...)}
}

// PathNotFound reports a user-supplied directory that does not exist.
// what names the role of the path ("Pico SDK", "Pico", "build directory").
func PathNotFound(what, path string) *Error {
	return &Error{
		Kind:    KindPathNotFound,
		Message: fmt.Sprintf("given path to %s '%s' not found", what, path),
		Path:    path,
	}
}

func DescriptorNotFound(path string, err error) *Error {
	return &Error{
		Kind:    KindDescriptorNotFound,
		Message: fmt.Sprintf("no %s found; pass a target with -t", path),
		Path:    path,
		Err:     err,
	}
}

func NoExecutableDeclared(path string) *Error {
	return &Error{
		Kind:    KindNoExecutableDeclared,
		Message: fmt.Sprintf("no add_executable() declaration found in %s", path),
		Path:    path,
	}
}

// ArtifactNotFound keeps the expected path verbatim in the message; it is
// the one thing the user needs to fix a wrong target or a missed build.
func ArtifactNotFound(path string) *Error {
	return &Error{
		Kind:    KindArtifactNotFound,
		Message: fmt.Sprintf("could not find target UF2 in build directory (looking for '%s')", path),
		Path:    path,
	}
}

// ExternalTool reports a configure/build step that did not succeed.
// diagnostic is the tool's raw stderr, kept verbatim.
func ExternalTool(tool, message, diagnostic string, err error) *Error {
	return &Error{
		Kind:       KindExternalTool,
		Message:    message,
		Tool:       tool,
		Diagnostic: diagnostic,
		Err:        err,
	}
}

func Transfer(src, dst string, err error) *Error {
	return &Error{
		Kind:    KindTransfer,
		Message: fmt.Sprintf("copying '%s' to '%s'", src, dst),
		Path:    dst,
		Err:     err,
	}
}

func ConfigRead(path string, err error) *Error {
	return &Error{
		Kind:    KindConfigRead,
		Message: fmt.Sprintf("reading config %s", path),
		Path:    path,
		Err:     err,
	}
}

func ConfigWrite(path string, err error) *Error {
	return &Error{
		Kind:    KindConfigWrite,
		Message: fmt.Sprintf("writing config %s", path),
		Path:    path,
		Err:     err,
	}
}

// BuildDir reports a build directory that could not be created. It shares
// the path exit code: the user has to pick another directory.
func BuildDir(path string, err error) *Error {
	return &Error{
		Kind:    KindPathNotFound,
		Message: fmt.Sprintf("cannot create build directory '%s'", path),
		Path:    path,
		Err:     err,
	}
}

// Manifest reports a picotools.toml that cannot be read or is invalid.
func Manifest(path string, err error) *Error {
	return &Error{
		Kind:    KindConfigRead,
		Message: fmt.Sprintf("reading project manifest %s", path),
		Path:    path,
		Err:     err,
	}
}
