package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrActionExists is returned when registering an action whose name is already taken.
	ErrActionExists = zerr.New("action already exists")

	// ErrActionNotFound is returned when a requested action is not in the registry.
	ErrActionNotFound = zerr.New("action not found")

	// ErrTargetNotFound is returned when a profiling registration references an unknown target.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrTargetNotExecutable is returned when a profiling registration references
	// a target that is not built as an executable.
	ErrTargetNotExecutable = zerr.New("target is not executable")

	// ErrScriptNotFound is returned when an explicitly configured format script
	// does not exist on disk.
	ErrScriptNotFound = zerr.New("format script not found")

	// ErrFormatterUnavailable is returned when formatting is marked required but
	// no formatter could be resolved.
	ErrFormatterUnavailable = zerr.New("no formatter available")

	// ErrUnformattedChanges is returned by check actions when formatting left
	// uncommitted changes behind in the working tree.
	ErrUnformattedChanges = zerr.New("working tree has unformatted changes")

	// ErrNoActionsSpecified is returned when run is invoked without action names.
	ErrNoActionsSpecified = zerr.New("no actions specified")
)

// ErrMetadata looks up a metadata key anywhere in the error chain. Wrapping
// an error adds context at the outer layer, so the interesting value may sit
// several levels down.
func ErrMetadata(err error, key string) (any, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		var zErr *zerr.Error
		if errors.As(err, &zErr) {
			if v, ok := zErr.Metadata()[key]; ok {
				return v, true
			}
			err = zErr
		}
	}
	return nil, false
}
