// Package errors defines the internal error vocabulary used by every
// component of the file system. It is deliberately small: this driver has
// no POSIX syscall surface to mirror, only the handful of failure kinds
// spec.md's integer sentinel scheme (0, bytes>=0, -1, -2, -3) collapses
// down to at the public API boundary.
package errors

import "fmt"

// DiskoError is a sentinel error value, comparable with ==, following the
// same pattern as the teacher driver's errno shim.
type DiskoError string

const ErrNotMounted = DiskoError("file system is not mounted")
const ErrAlreadyMounted = DiskoError("file system is already mounted")
const ErrExists = DiskoError("file already exists")
const ErrNotFound = DiskoError("no such file or link")
const ErrNoSpace = DiskoError("no free inode or data block")
const ErrNameTooLong = DiskoError("name exceeds the maximum length")
const ErrIsLink = DiskoError("operation not valid on a symbolic link")
const ErrLinkTarget = DiskoError("a link cannot target another link")
const ErrInvalidDescriptor = DiskoError("invalid file descriptor")
const ErrAlreadyOpen = DiskoError("file is already open")
const ErrAlreadyClosed = DiskoError("file is already closed")
const ErrIntegritySession = DiskoError("descriptor requires the integrity close path")
const ErrNotIntegritySession = DiskoError("descriptor was not opened with integrity checking")
const ErrInvalidArgument = DiskoError("invalid argument")
const ErrInvalidSeek = DiskoError("resulting seek position is out of range")
const ErrCorrupted = DiskoError("block failed its integrity check")
const ErrNoIntegrityInfo = DiskoError("no blocks carry integrity information")
const ErrIO = DiskoError("block device I/O failure")

func (e DiskoError) Error() string {
	return string(e)
}

// WithMessage returns a DriverError carrying e as its underlying sentinel
// and message as additional context.
func (e DiskoError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), message),
		originalError: e,
	}
}

// WrapError returns a DriverError whose message is e's text followed by
// err's, and which unwraps to err.
func (e DiskoError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), err.Error()),
		originalError: err,
	}
}
