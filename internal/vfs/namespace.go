package vfs

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/logging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

var (
	ErrAlreadyMounted = errors.New("prefix already mounted")
	ErrNotMounted     = errors.New("prefix not mounted")
	ErrInvalidPrefix  = errors.New("invalid mount prefix")
)

// Format describes how a bundle file was mounted.
type Format string

const (
	FormatZip  Format = "zip"
	FormatBlob Format = "blob"
)

// Mount is a registered bundle.
type Mount struct {
	Prefix string
	File   string
	Format Format

	fsys   fs.FS
	closer io.Closer
}

// Namespace is a process-wide tree of compiled-in assets plus mounted
// bundles. A bundle registered at "/pack1/" makes its entries addressable as
// "/pack1/<entry>". Mounted bundles shadow compiled-in assets under the same
// prefix.
type Namespace struct {
	bundled fs.FS
	logger  *logging.Logger

	mu     sync.RWMutex
	mounts map[string]*Mount
}

// Option configures a Namespace.
type Option func(*Namespace)

// WithLogger sets the namespace logger.
func WithLogger(l *logging.Logger) Option {
	return func(n *Namespace) {
		n.logger = l.Named("vfs")
	}
}

// NewNamespace creates a namespace over the compiled-in tree. bundled may be nil.
func NewNamespace(bundled fs.FS, opts ...Option) *Namespace {
	n := &Namespace{
		bundled: bundled,
		logger:  logging.NewNop(),
		mounts:  make(map[string]*Mount),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Register mounts the bundle stored at file under prefix.
func (n *Namespace) Register(file, prefix string) error {
	key, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.mounts[key]; ok {
		return fmt.Errorf("register %s at /%s/: %w", file, key, ErrAlreadyMounted)
	}

	m, err := openBundle(file)
	if err != nil {
		return fmt.Errorf("register %s at /%s/: %w", file, key, err)
	}
	m.Prefix = key
	n.mounts[key] = m

	n.logger.Debug("bundle registered",
		zap.String("prefix", "/"+key+"/"),
		zap.String("file", file),
		zap.String("format", string(m.Format)))
	return nil
}

// Unregister removes the mount at prefix if it was registered from file.
func (n *Namespace) Unregister(file, prefix string) error {
	key, err := normalizePrefix(prefix)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	m, ok := n.mounts[key]
	if !ok || !sameFile(m.File, file) {
		return fmt.Errorf("unregister %s at /%s/: %w", file, key, ErrNotMounted)
	}
	delete(n.mounts, key)

	if m.closer != nil {
		if err := m.closer.Close(); err != nil {
			n.logger.Warn("closing bundle failed", zap.String("file", file), zap.Error(err))
		}
	}

	n.logger.Debug("bundle unregistered", zap.String("prefix", "/"+key+"/"), zap.String("file", file))
	return nil
}

// Mounted reports whether prefix currently has a bundle mounted.
func (n *Namespace) Mounted(prefix string) bool {
	key, err := normalizePrefix(prefix)
	if err != nil {
		return false
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.mounts[key]
	return ok
}

// Mounts returns the mounted prefixes in sorted order, formatted as "/name/".
func (n *Namespace) Mounts() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]string, 0, len(n.mounts))
	for key := range n.mounts {
		out = append(out, "/"+key+"/")
	}
	sort.Strings(out)
	return out
}

// Lookup returns a copy of the mount registered at prefix.
func (n *Namespace) Lookup(prefix string) (Mount, bool) {
	key, err := normalizePrefix(prefix)
	if err != nil {
		return Mount{}, false
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	m, ok := n.mounts[key]
	if !ok {
		return Mount{}, false
	}
	return Mount{Prefix: m.Prefix, File: m.File, Format: m.Format}, true
}

// Exists reports whether name resolves to an entry in the namespace.
func (n *Namespace) Exists(name string) bool {
	fsys, rel, ok := n.resolve(name)
	if !ok {
		return false
	}
	if rel == "." {
		return true
	}
	_, err := fs.Stat(fsys, rel)
	return err == nil
}

// Open opens name for reading.
func (n *Namespace) Open(name string) (fs.File, error) {
	fsys, rel, ok := n.resolve(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return fsys.Open(rel)
}

// ReadFile reads the whole entry at name.
func (n *Namespace) ReadFile(name string) ([]byte, error) {
	fsys, rel, ok := n.resolve(name)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(fsys, rel)
}

// FS exposes the namespace as an fs.FS rooted at "/".
func (n *Namespace) FS() fs.FS {
	return namespaceFS{n}
}

// Close unmounts every bundle.
func (n *Namespace) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	var errs []error
	for key, m := range n.mounts {
		if m.closer != nil {
			if err := m.closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		delete(n.mounts, key)
	}
	return errors.Join(errs...)
}

// resolve maps a namespace path onto the filesystem serving it. The longest
// mounted prefix wins; anything else falls through to the compiled-in tree.
func (n *Namespace) resolve(name string) (fs.FS, string, bool) {
	clean := cleanName(name)

	n.mu.RLock()
	defer n.mu.RUnlock()

	for prefix := clean; prefix != "."; prefix = path.Dir(prefix) {
		if m, ok := n.mounts[prefix]; ok {
			rel := strings.TrimPrefix(strings.TrimPrefix(clean, prefix), "/")
			if rel == "" {
				rel = "."
			}
			return m.fsys, rel, true
		}
	}

	if n.bundled == nil {
		return nil, "", false
	}
	return n.bundled, clean, true
}

type namespaceFS struct{ n *Namespace }

func (f namespaceFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return f.n.Open(name)
}

func (f namespaceFS) ReadFile(name string) ([]byte, error) {
	return f.n.ReadFile(name)
}

// openBundle opens file as a zip tree when it sniffs as one, otherwise as a
// single-entry tree holding the file under its base name.
func openBundle(file string) (*Mount, error) {
	mt, err := mimetype.DetectFile(file)
	if err != nil {
		return nil, err
	}

	if isZip(mt) {
		rc, err := zip.OpenReader(file)
		if err != nil {
			return nil, err
		}
		rc.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
		return &Mount{File: file, Format: FormatZip, fsys: rc, closer: rc}, nil
	}

	if _, err := os.Stat(file); err != nil {
		return nil, err
	}
	return &Mount{File: file, Format: FormatBlob, fsys: blobFS{name: filepath.Base(file), path: file}}, nil
}

func isZip(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// normalizePrefix turns "/pack1/", "pack1" or ":/pack1" into "pack1".
func normalizePrefix(prefix string) (string, error) {
	key := cleanName(prefix)
	if key == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return key, nil
}

// cleanName strips the optional ":" resource marker and leading slashes and
// returns a slash-separated path valid for fs.FS, or "." for the root.
func cleanName(name string) string {
	name = strings.TrimPrefix(name, ":")
	name = filepath.ToSlash(name)
	name = strings.TrimLeft(name, "/")
	if name == "" {
		return "."
	}
	return path.Clean(name)
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	bi, err := os.Stat(b)
	if err != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return os.SameFile(ai, bi)
}
