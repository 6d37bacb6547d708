// Package paths derives per-application directories.
//
// An Identity (organization, domain, application, optional version) is turned
// into a sub-path which is appended to the platform data, cache and config
// homes resolved by github.com/adrg/xdg:
//
//	$XDG_DATA_HOME/<org>/<domain>/<app>[/<version>]
//	$XDG_CACHE_HOME/<org>/<domain>/<app>[/<version>]
//	$XDG_CONFIG_HOME/<org>/<domain>/<app>[/<version>]
//
// # Usage
//
//	layout := paths.NewLayout(paths.Identity{
//	    Organization: "Acme",
//	    Application:  "viewer",
//	}, paths.DefaultBases())
//
//	dataDir := layout.DataDir() // ~/.local/share/Acme/viewer
//
// The identity is passed in explicitly; nothing here reads process-wide state
// other than the XDG environment captured by DefaultBases.
package paths
