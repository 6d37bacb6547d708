package filesystem

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// URI-like prefixes recognised by Read.
const (
	BundledScheme = "res://"
	FileScheme    = "file://"
)

// Exists reports whether path names an existing entry.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path names an existing regular file.
func (s *Store) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path names an existing directory.
func (s *Store) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Remove deletes a file, or a directory and everything below it.
func (s *Store) Remove(path string) error {
	switch {
	case s.IsFile(path):
		if err := os.Remove(path); err != nil {
			return s.failOS("remove", path, err)
		}
	case s.IsDir(path):
		if err := os.RemoveAll(path); err != nil {
			return s.failOS("remove", path, err)
		}
	default:
		return s.fail("remove", path, ErrNotFound, nil)
	}
	return nil
}

// Read returns the text of the file at path with all line terminators
// removed, i.e. the lines concatenated. "file://" is stripped; "res://"
// paths are read from the bundled tree.
func (s *Store) Read(path string) (string, error) {
	if rel, ok := strings.CutPrefix(path, BundledScheme); ok {
		return s.readBundled(path, rel)
	}
	local := strings.TrimPrefix(path, FileScheme)

	info, err := os.Stat(local)
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", s.fail("read", path, ErrWrongType, nil)
	}

	f, err := os.Open(local)
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	defer f.Close()

	text, err := joinLines(f)
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	return text, nil
}

func (s *Store) readBundled(path, rel string) (string, error) {
	if s.bundled == nil {
		return "", s.fail("read", path, ErrNotFound, errors.New("no bundled tree"))
	}

	f, err := s.bundled.Open(strings.TrimLeft(rel, "/"))
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	if info.IsDir() {
		return "", s.fail("read", path, ErrWrongType, nil)
	}

	text, err := joinLines(f)
	if err != nil {
		return "", s.failOS("read", path, err)
	}
	return text, nil
}

// joinLines concatenates every line of r, dropping "\n" and "\r\n".
func joinLines(r io.Reader) (string, error) {
	br := bufio.NewReader(r)

	var sb strings.Builder
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		sb.WriteString(line)

		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// Write stores data at path. An existing entry is only replaced when
// overwrite is set and it is a file; directories are never replaced.
func (s *Store) Write(data, path string, overwrite bool) error {
	if s.Exists(path) {
		if !overwrite {
			return s.fail("write", path, ErrExists, nil)
		}
		if s.IsDir(path) {
			return s.fail("write", path, ErrWrongType, nil)
		}
		if err := os.Remove(path); err != nil {
			return s.failOS("write", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return s.failOS("write", path, err)
	}

	if _, err := io.WriteString(f, data); err != nil {
		f.Close()
		return s.failOS("write", path, err)
	}
	if err := f.Close(); err != nil {
		return s.failOS("write", path, err)
	}
	return nil
}
