package vfs

import (
	"io/fs"
	"os"
)

// blobFS serves a single opaque file as the only entry of a tree.
type blobFS struct {
	name string
	path string
}

func (b blobFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || name != b.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return os.Open(b.path)
}

func (b blobFS) ReadFile(name string) ([]byte, error) {
	if name != b.name {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return os.ReadFile(b.path)
}
