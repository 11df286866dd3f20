package callfile

import (
	"os"
	"strings"

	domainerrors "github.com/callspool/callspool/internal/platform/errors"
)

// DefaultSpoolDir is the spool directory Asterisk watches on most
// installations.
const DefaultSpoolDir = "/var/spool/asterisk/outgoing"

// Source is implemented by every call file section. A source validates
// itself and serializes into ordered "Key: value" directive lines.
type Source interface {
	Valid() bool
	Directives() []string
}

// CallFile describes one spool submission: the call target, the action
// to run once the call is answered, and how the finished file should be
// handed to Asterisk. Fields are set up front and not mutated after
// construction.
type CallFile struct {
	// Call is the target section. Must pass its own validation.
	Call Source
	// Action is the action section. Must pass its own validation.
	Action Source
	// Archive asks Asterisk to keep the call file after processing.
	Archive bool
	// User is the system account the spooled file should be owned by.
	User string
	// SpoolDir overrides DefaultSpoolDir when set.
	SpoolDir string
}

// SpoolDirectory returns the configured spool directory, falling back
// to DefaultSpoolDir.
func (cf *CallFile) SpoolDirectory() string {
	if cf.SpoolDir != "" {
		return cf.SpoolDir
	}
	return DefaultSpoolDir
}

// Valid reports whether the call file can be built: both sections
// validate and the spool directory exists. Repeatable and side-effect
// free.
func (cf *CallFile) Valid() bool {
	if cf.Call == nil || !cf.Call.Valid() {
		return false
	}
	if cf.Action == nil || !cf.Action.Valid() {
		return false
	}
	info, err := os.Stat(cf.SpoolDirectory())
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Build returns the ordered directive lines of the call file: target
// lines, then action lines, then an Archive directive when requested.
// Building an invalid call file fails with a VALIDATION_FAILED error
// and never touches the filesystem.
func (cf *CallFile) Build() ([]string, error) {
	if !cf.Valid() {
		return nil, domainerrors.New(domainerrors.CodeValidationFailed, "call file failed validation")
	}
	lines := append([]string{}, cf.Call.Directives()...)
	lines = append(lines, cf.Action.Directives()...)
	if cf.Archive {
		lines = append(lines, "Archive: yes")
	}
	return lines, nil
}

// Render returns the call file content exactly as it will be written to
// disk: directive lines joined by newlines, no trailing newline.
func (cf *CallFile) Render() (string, error) {
	lines, err := cf.Build()
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
