package filesystem

// DataPath returns the per-app data directory.
func (s *Store) DataPath() string {
	return s.layout.DataDir()
}

// CachePath returns the per-app cache directory.
func (s *Store) CachePath() string {
	return s.layout.CacheDir()
}

// ConfigPath returns the per-app config directory.
func (s *Store) ConfigPath() string {
	return s.layout.ConfigDir()
}
