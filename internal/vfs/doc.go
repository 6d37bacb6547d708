// Package vfs implements the bundle namespace.
//
// The namespace combines a compiled-in asset tree (usually an embed.FS) with
// bundles registered at runtime. Registering "/var/lib/app/pack1.rcc" at
// prefix "/pack1/" makes the bundle's entries addressable as "/pack1/...".
//
// Bundle formats:
//   - zip archives (sniffed with mimetype), including zstd-compressed entries
//   - anything else, exposed as a single entry named after the file
//
// Example Usage:
//
//	ns := vfs.NewNamespace(assets.Bundled())
//	if err := ns.Register(file, "/pack1/"); err != nil {
//	    return err
//	}
//	data, err := ns.ReadFile("/pack1/theme.json")
package vfs
