package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// FallbackName is the sub-path used when an Identity carries no names at all.
const FallbackName = "assetkit"

// Identity names the application owning a set of per-app directories.
type Identity struct {
	Organization string
	Domain       string
	Application  string
	Version      string

	// IncludeVersion appends Version to the sub-path so each release gets
	// its own directories.
	IncludeVersion bool
}

// IsZero reports whether no identity field contributes to the sub-path.
func (id Identity) IsZero() bool {
	return id.Organization == "" && id.Domain == "" && id.Application == "" &&
		(!id.IncludeVersion || id.Version == "")
}

// SubPath returns the per-application directory segment, e.g.
// "Acme/acme.example/viewer". Empty fields are skipped and trailing
// separators stripped. A zero Identity yields FallbackName.
func (id Identity) SubPath() string {
	sep := string(filepath.Separator)

	var sub strings.Builder
	for _, part := range id.parts() {
		if part == "" {
			continue
		}
		sub.WriteString(part)
		sub.WriteString(sep)
	}

	s := strings.TrimRight(sub.String(), sep+"/")
	if s == "" {
		return FallbackName
	}
	return s
}

func (id Identity) parts() []string {
	parts := []string{id.Organization, id.Domain, id.Application}
	if id.IncludeVersion {
		parts = append(parts, id.Version)
	}
	return parts
}

// Bases holds the platform base directories per-app paths hang off.
type Bases struct {
	Data   string
	Cache  string
	Config string
}

// DefaultBases returns the XDG data, cache and config homes for the current
// user. On macOS and Windows xdg maps these to the platform equivalents.
func DefaultBases() Bases {
	return Bases{
		Data:   xdg.DataHome,
		Cache:  xdg.CacheHome,
		Config: xdg.ConfigHome,
	}
}

// RootedBases places all three bases under one directory. Used for
// portable installs and tests.
func RootedBases(root string) Bases {
	return Bases{
		Data:   filepath.Join(root, "data"),
		Cache:  filepath.Join(root, "cache"),
		Config: filepath.Join(root, "config"),
	}
}

// Layout resolves per-application directories.
type Layout struct {
	Identity Identity
	Bases    Bases
}

// NewLayout creates a layout for the given identity and bases.
func NewLayout(id Identity, bases Bases) Layout {
	return Layout{Identity: id, Bases: bases}
}

// DataDir returns the app's data directory
func (l Layout) DataDir() string {
	return filepath.Join(l.Bases.Data, l.Identity.SubPath())
}

// CacheDir returns the app's cache directory
func (l Layout) CacheDir() string {
	return filepath.Join(l.Bases.Cache, l.Identity.SubPath())
}

// ConfigDir returns the app's config directory
func (l Layout) ConfigDir() string {
	return filepath.Join(l.Bases.Config, l.Identity.SubPath())
}

// ValidName checks that name can be used as a single path component.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
