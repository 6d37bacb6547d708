package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
)

// Find walks dir concurrently and returns the sorted absolute paths of files
// whose slash-separated path relative to dir matches pattern ("**/*.json").
func (s *Store) Find(ctx context.Context, dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, s.fail("find", dir, ErrBadPattern, fmt.Errorf("%q", pattern))
	}
	if !s.IsDir(dir) {
		return nil, s.fail("find", dir, ErrNotFound, nil)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, s.failOS("find", dir, err)
	}

	var (
		mu      sync.Mutex
		matches []string
	)
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			matches = append(matches, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, s.failOS("find", dir, err)
	}

	sort.Strings(matches)
	return matches, nil
}
