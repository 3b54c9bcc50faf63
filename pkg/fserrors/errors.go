// Package fserrors defines the stable error taxonomy shared by every
// subsystem of the filesystem, mirroring the typed *StoreError pattern
// used across the metadata and lock stores this module was modeled on.
package fserrors

import "fmt"

// Code identifies a domain or resource error from the fixed taxonomy.
// Numeric values are part of the contract only where noted; the taxonomy
// itself — which Code names exist — is what callers should depend on.
type Code int

const (
	// ErrNonUniqueName is returned by Create when the name already exists
	// in the directory.
	ErrNonUniqueName Code = 111

	// ErrNotExists is returned by Open, Delete, and any lookup that fails
	// to find a file in the directory.
	ErrNotExists Code = 112

	// ErrOOM is returned when the block allocator has no free blocks left.
	ErrOOM Code = 113

	// ErrPtrNotAllocated is returned by the block allocator when asked to
	// free a block that is not currently marked allocated (double free).
	ErrPtrNotAllocated Code = 114

	// ErrFileNotOpen is returned by any open-file-table operation — close,
	// read-lock, write-lock — against a name with no open entry.
	ErrFileNotOpen Code = 115

	// ErrFileOpen is returned by Delete when the file is still open.
	ErrFileOpen Code = 116

	// ErrNameLengthExceeded is returned by Create/Directory.Add when the
	// name is too long to fit in a FileNode block.
	ErrNameLengthExceeded Code = 117
)

// String gives the taxonomy name for a Code, used in log fields and error
// messages rather than the bare numeric value.
func (c Code) String() string {
	switch c {
	case ErrNonUniqueName:
		return "NON_UNIQUE_NAME"
	case ErrNotExists:
		return "NOT_EXISTS"
	case ErrOOM:
		return "OOM"
	case ErrPtrNotAllocated:
		return "PTR_NOT_ALLOCATED"
	case ErrFileNotOpen:
		return "FILE_NOT_OPEN"
	case ErrFileOpen:
		return "FILE_OPEN"
	case ErrNameLengthExceeded:
		return "NAME_LENGTH_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed error every operation in this module returns. Callers
// that care about the taxonomy should use errors.As and switch on Code
// rather than comparing error strings.
type Error struct {
	// Code is the taxonomy member this error belongs to.
	Code Code

	// Message is a human-readable description.
	Message string

	// Name is the file name related to the error, if applicable.
	Name string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether err carries the given Code, so callers can write
// `fserrors.Is(err, fserrors.ErrNotExists)` without importing errors.As
// boilerplate at every call site.
func Is(err error, code Code) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Code == code
}

// ============================================================================
// Error Factory Functions
// ============================================================================

// NewNonUniqueNameError reports that a file with this name already exists.
func NewNonUniqueNameError(name string) *Error {
	return &Error{Code: ErrNonUniqueName, Message: "name already exists", Name: name}
}

// NewNotExistsError reports that no file with this name exists.
func NewNotExistsError(name string) *Error {
	return &Error{Code: ErrNotExists, Message: "file does not exist", Name: name}
}

// NewOOMError reports that the block allocator has no free blocks left.
func NewOOMError() *Error {
	return &Error{Code: ErrOOM, Message: "no free blocks available"}
}

// NewPtrNotAllocatedError reports a double-free of a block index.
func NewPtrNotAllocatedError() *Error {
	return &Error{Code: ErrPtrNotAllocated, Message: "block is not currently allocated"}
}

// NewFileNotOpenError reports an operation against a name with no open entry.
func NewFileNotOpenError(name string) *Error {
	return &Error{Code: ErrFileNotOpen, Message: "file is not open", Name: name}
}

// NewFileOpenError reports a delete refused because the file is still open.
func NewFileOpenError(name string) *Error {
	return &Error{Code: ErrFileOpen, Message: "file is open", Name: name}
}

// NewNameLengthExceededError reports a name too long to fit in a FileNode block.
func NewNameLengthExceededError(name string) *Error {
	return &Error{Code: ErrNameLengthExceeded, Message: "name exceeds maximum length", Name: name}
}
