package vfsh

import "errors"

// ErrorKind classifies every failure the VFS and the interpreter can produce
type ErrorKind uint8

const (
	UnknownKind ErrorKind = iota
	ParseError
	NotFound
	NotADirectory
	NotAFile
	InvalidName
	AlreadyExists
	UnsupportedValue // load-time only
	InvalidArgument
	UnknownCommand
)

var kindNames = [...]string{
	UnknownKind:      "Unknown",
	ParseError:       "ParseError",
	NotFound:         "NotFound",
	NotADirectory:    "NotADirectory",
	NotAFile:         "NotAFile",
	InvalidName:      "InvalidName",
	AlreadyExists:    "AlreadyExists",
	UnsupportedValue: "UnsupportedValue",
	InvalidArgument:  "InvalidArgument",
	UnknownCommand:   "UnknownCommand",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[UnknownKind]
}

// defaultMessages are the user facing texts rendered after a verb prefix
var defaultMessages = map[ErrorKind]string{
	ParseError:       "parse error",
	NotFound:         "No such file or directory",
	NotADirectory:    "Not a directory",
	NotAFile:         "Not a file",
	InvalidName:      "Invalid file name",
	AlreadyExists:    "File exists",
	UnsupportedValue: "Unsupported VFS value",
	InvalidArgument:  "invalid argument",
	UnknownCommand:   "command not found",
}

// Error is the typed failure returned by the resolver, the directory
// operations, the seed loader and the interpreter verbs.
type Error struct {
	Kind ErrorKind
	Msg  string // Rendered message; defaults to the kind's standard text
	Path string // Offending path or entry name when known
	// Existing is the type of the node that caused an AlreadyExists conflict
	Existing NodeType
	Err      error
}

// NewError creates an Error of kind for path using the kind's standard message
func NewError(kind ErrorKind, path string) *Error {
	return &Error{Kind: kind, Msg: defaultMessages[kind], Path: path}
}

// Errorf creates an Error of kind with a custom message
func Errorf(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return defaultMessages[e.Kind]
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrParse            = NewError(ParseError, "")
	ErrNotFound         = NewError(NotFound, "")
	ErrNotADirectory    = NewError(NotADirectory, "")
	ErrNotAFile         = NewError(NotAFile, "")
	ErrInvalidName      = NewError(InvalidName, "")
	ErrAlreadyExists    = NewError(AlreadyExists, "")
	ErrUnsupportedValue = NewError(UnsupportedValue, "")
	ErrInvalidArgument  = NewError(InvalidArgument, "")
	ErrUnknownCommand   = NewError(UnknownCommand, "")
)

// KindOf returns the ErrorKind carried by err or UnknownKind
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return UnknownKind
}
