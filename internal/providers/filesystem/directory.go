package filesystem

import (
	"os"
	"path/filepath"
)

// List returns the absolute paths of every entry directly under dir. With
// recursive set, the entries of each subdirectory follow, depth-first, in
// the same name order. Symlinked directories are listed but not descended.
func (s *Store) List(dir string, recursive bool) ([]string, error) {
	if !s.IsDir(dir) {
		if s.Exists(dir) {
			return nil, s.fail("list", dir, ErrWrongType, nil)
		}
		return nil, s.fail("list", dir, ErrNotFound, nil)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, s.failOS("list", dir, err)
	}
	return s.list(abs, recursive)
}

func (s *Store) list(dir string, recursive bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, s.failOS("list", dir, err)
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, filepath.Join(dir, e.Name()))
	}

	if !recursive {
		return out, nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := s.list(filepath.Join(dir, e.Name()), true)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// Ensure creates path and any missing parents.
func (s *Store) Ensure(path string) (EnsureStatus, error) {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return EnsureExisted, nil
		}
		return EnsureFailed, s.fail("ensure", path, ErrWrongType, nil)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return EnsureFailed, s.failOS("ensure", path, err)
	}
	return EnsureCreated, nil
}

// Ensured is the boolean form of Ensure used by scripts: true only when the
// directory was created by this call. An existing directory reports false,
// same as a failure.
func (s *Store) Ensured(path string) bool {
	status, _ := s.Ensure(path)
	return status == EnsureCreated
}
