// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: target :: which <name>.uf2 to flash
//
//  An explicit name is used as-is. Otherwise the project's CMakeLists.txt is
//  scanned for add_executable() and the first declared executable wins.
// ─────────────────────────────────────────────────────────────────────────────

package target

import (
	"os"
	"path/filepath"

	"github.com/picotools/cli/internal/errs"
)

// DescriptorFile is the project descriptor read when no target is given.
const DescriptorFile = "CMakeLists.txt"

// SourceExplicit marks a target that was supplied rather than discovered.
const SourceExplicit = "explicit"

// Target is the firmware base name picked for one upload.
type Target struct {
	Name string
	// Source is SourceExplicit or the descriptor path the name came from.
	Source string
	// Declared lists every executable found in the descriptor, in order.
	// Empty for explicit targets.
	Declared []string
}

// Ambiguous reports whether the descriptor declared more than one executable.
func (t *Target) Ambiguous() bool {
	return len(t.Declared) > 1
}

// Resolve returns explicit verbatim when non-empty, otherwise the first
// executable declared in projectDir/CMakeLists.txt.
func Resolve(projectDir, explicit string) (*Target, error) {
	if explicit != "" {
		return &Target{Name: explicit, Source: SourceExplicit}, nil
	}

	path := filepath.Join(projectDir, DescriptorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.DescriptorNotFound(DescriptorFile, err)
	}

	names := Executables(string(data))
	if len(names) == 0 {
		return nil, errs.NoExecutableDeclared(DescriptorFile)
	}
	return &Target{Name: names[0], Source: DescriptorFile, Declared: names}, nil
}
