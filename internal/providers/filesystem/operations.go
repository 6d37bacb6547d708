package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Copy copies a file or a directory tree from src to dst.
//
// A file is copied byte for byte and never replaces an existing dst. For a
// directory, dst is created when missing and the immediate files are copied
// first; with recursive set, subdirectories follow. Copying stops at the
// first failure and files already copied are left in place. A recursive
// copy into src itself or one of its subdirectories fails with ErrIntoSelf
// before anything is written.
func (s *Store) Copy(src, dst string, recursive bool) error {
	switch {
	case s.IsFile(src):
		return s.copyFile(src, dst)
	case s.IsDir(src):
		if recursive && within(src, dst) {
			return s.fail("copy", dst, ErrIntoSelf, nil)
		}
		return s.copyDir(src, dst, recursive)
	default:
		return s.fail("copy", src, ErrNotFound, nil)
	}
}

func (s *Store) copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return s.failOS("copy", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return s.failOS("copy", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return s.failOS("copy", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return s.failOS("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return s.failOS("copy", dst, err)
	}
	return nil
}

func (s *Store) copyDir(src, dst string, recursive bool) error {
	if s.IsFile(dst) {
		return s.fail("copy", dst, ErrWrongType, nil)
	}
	if !s.IsDir(dst) {
		if _, err := s.Ensure(dst); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return s.failOS("copy", src, err)
	}

	var dirs []string
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		if e.IsDir() {
			dirs = append(dirs, e.Name())
			continue
		}
		if !s.IsFile(from) {
			continue
		}
		if err := s.copyFile(from, filepath.Join(dst, e.Name())); err != nil {
			return err
		}
	}

	if !recursive {
		return nil
	}

	for _, name := range dirs {
		if err := s.copyDir(filepath.Join(src, name), filepath.Join(dst, name), true); err != nil {
			return err
		}
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	d, err1 := filepath.Abs(dir)
	p, err2 := filepath.Abs(path)
	if err1 != nil || err2 != nil {
		return false
	}
	rel, err := filepath.Rel(d, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
