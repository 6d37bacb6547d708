// Package filesystem implements the path store: per-application directory
// resolution plus generic file and directory operations.
//
// The package is organized by concern:
//   - paths: data, cache and config directories for an application identity
//   - basic: read, write, remove and existence predicates
//   - directory: list and ensure
//   - operations: file and directory-tree copy
//   - search: concurrent glob search (fastwalk + doublestar)
//
// All operations:
//   - Block on the underlying OS calls and take no locks
//   - Return a *PathError whose kind (ErrExists, ErrNotFound, ErrWrongType,
//     ErrPermission, ErrIO) can be matched with errors.Is
//   - Log one warning per failure through the store's zap logger
//
// Example Usage:
//
//	store := filesystem.NewStore(identity, paths.DefaultBases(), filesystem.WithLogger(logger))
//	if err := store.Write(data, filepath.Join(store.DataPath(), "notes.txt"), false); errors.Is(err, filesystem.ErrExists) {
//	    // keep the existing file
//	}
package filesystem
