package filesystem

import (
	"errors"
	"io/fs"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/paths"
	"go.uber.org/zap"
)

// Failure kinds carried by *PathError. Match them with errors.Is.
var (
	ErrExists     = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrWrongType  = errors.New("wrong entry type")
	ErrPermission = errors.New("permission denied")
	ErrIO         = errors.New("i/o failure")
	ErrBadPattern = errors.New("bad pattern")
	ErrIntoSelf   = errors.New("destination inside source")
)

// PathError records a failed operation, the path it failed on and its kind.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	msg := e.Op + " " + e.Path + ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the failure kind.
func (e *PathError) Is(target error) bool {
	return target == e.Kind
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// kindOf classifies an OS error.
func kindOf(err error) error {
	switch {
	case errors.Is(err, fs.ErrExist):
		return ErrExists
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return ErrIO
	}
}

// EnsureStatus is the outcome of Ensure.
type EnsureStatus int

const (
	EnsureFailed EnsureStatus = iota
	EnsureCreated
	EnsureExisted
)

func (s EnsureStatus) String() string {
	switch s {
	case EnsureCreated:
		return "created"
	case EnsureExisted:
		return "existed"
	default:
		return "failed"
	}
}

// Store performs filesystem operations and resolves per-app directories.
// All methods block on the underlying OS calls.
type Store struct {
	layout  paths.Layout
	bundled fs.FS
	logger  *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger failures are reported to.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = l.Named("fs")
	}
}

// WithBundled sets the tree "res://" paths are read from.
func WithBundled(fsys fs.FS) Option {
	return func(s *Store) {
		s.bundled = fsys
	}
}

// NewStore creates a Store for the given application identity.
func NewStore(identity paths.Identity, bases paths.Bases, opts ...Option) *Store {
	s := &Store{
		layout: paths.NewLayout(identity, bases),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if identity.IsZero() {
		s.logger.Warn("no application identity set, using generic directory",
			zap.String("sub_path", paths.FallbackName))
	}
	return s
}

// fail builds a *PathError and logs it.
func (s *Store) fail(op, path string, kind, err error) error {
	pe := &PathError{Op: op, Path: path, Kind: kind, Err: err}
	s.logger.Warn(op+" failed", zap.String("path", path), zap.Error(pe))
	return pe
}

// failOS classifies err and logs it.
func (s *Store) failOS(op, path string, err error) error {
	return s.fail(op, path, kindOf(err), err)
}
