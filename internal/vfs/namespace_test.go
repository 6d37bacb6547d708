package vfs

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for name, content := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zstd.ZipMethodWinZip})
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestRegisterZipBundle(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "pack1.rcc")
	writeZip(t, bundle, map[string]string{
		"theme.json":      `{"accent":"teal"}`,
		"images/logo.svg": "<svg/>",
	})

	ns := NewNamespace(nil)
	defer ns.Close()

	require.NoError(t, ns.Register(bundle, "/pack1/"))

	assert.True(t, ns.Mounted("/pack1/"))
	assert.True(t, ns.Mounted("pack1"))
	assert.Equal(t, []string{"/pack1/"}, ns.Mounts())

	m, ok := ns.Lookup("/pack1/")
	require.True(t, ok)
	assert.Equal(t, FormatZip, m.Format)
	assert.Equal(t, bundle, m.File)

	assert.True(t, ns.Exists("/pack1/"))
	assert.True(t, ns.Exists("/pack1/theme.json"))
	assert.True(t, ns.Exists(":/pack1/images/logo.svg"))
	assert.False(t, ns.Exists("/pack1/missing.txt"))

	data, err := ns.ReadFile("/pack1/theme.json")
	require.NoError(t, err)
	assert.Equal(t, `{"accent":"teal"}`, string(data))
}

func TestRegisterBlobBundle(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "pack2.rcc")
	require.NoError(t, os.WriteFile(bundle, []byte("opaque bytes"), 0o644))

	ns := NewNamespace(nil)
	require.NoError(t, ns.Register(bundle, "/pack2/"))

	m, ok := ns.Lookup("pack2")
	require.True(t, ok)
	assert.Equal(t, FormatBlob, m.Format)

	data, err := ns.ReadFile("/pack2/pack2.rcc")
	require.NoError(t, err)
	assert.Equal(t, "opaque bytes", string(data))
	assert.False(t, ns.Exists("/pack2/other"))
}

func TestRegisterTwiceFails(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "a.rcc")
	require.NoError(t, os.WriteFile(bundle, []byte("a"), 0o644))

	ns := NewNamespace(nil)
	require.NoError(t, ns.Register(bundle, "/a/"))

	err := ns.Register(bundle, "/a/")
	assert.ErrorIs(t, err, ErrAlreadyMounted)
}

func TestRegisterMissingFile(t *testing.T) {
	ns := NewNamespace(nil)

	err := ns.Register(filepath.Join(t.TempDir(), "nope.rcc"), "/nope/")
	assert.Error(t, err)
	assert.False(t, ns.Mounted("/nope/"))
}

func TestRegisterInvalidPrefix(t *testing.T) {
	ns := NewNamespace(nil)

	assert.ErrorIs(t, ns.Register("x.rcc", "/"), ErrInvalidPrefix)
	assert.ErrorIs(t, ns.Unregister("x.rcc", ""), ErrInvalidPrefix)
}

func TestUnregister(t *testing.T) {
	dir := t.TempDir()
	bundle := filepath.Join(dir, "pack1.rcc")
	writeZip(t, bundle, map[string]string{"a.txt": "a"})

	ns := NewNamespace(nil)
	require.NoError(t, ns.Register(bundle, "/pack1/"))

	// Wrong file leaves the mount alone
	other := filepath.Join(dir, "other.rcc")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	assert.ErrorIs(t, ns.Unregister(other, "/pack1/"), ErrNotMounted)
	assert.True(t, ns.Mounted("/pack1/"))

	require.NoError(t, ns.Unregister(bundle, "/pack1/"))
	assert.False(t, ns.Mounted("/pack1/"))
	assert.False(t, ns.Exists("/pack1/a.txt"))

	// Second unregister has nothing to remove
	assert.ErrorIs(t, ns.Unregister(bundle, "/pack1/"), ErrNotMounted)
}

func TestBundledFallback(t *testing.T) {
	bundled := fstest.MapFS{
		"qml/main.qml":  &fstest.MapFile{Data: []byte("Item {}")},
		"pack1/old.txt": &fstest.MapFile{Data: []byte("compiled-in")},
	}

	dir := t.TempDir()
	bundle := filepath.Join(dir, "pack1.rcc")
	writeZip(t, bundle, map[string]string{"new.txt": "fetched"})

	ns := NewNamespace(bundled)
	assert.True(t, ns.Exists("/qml/main.qml"))
	assert.True(t, ns.Exists("/pack1/old.txt"))

	require.NoError(t, ns.Register(bundle, "/pack1/"))

	// The mount shadows the compiled-in directory of the same name
	assert.True(t, ns.Exists("/pack1/new.txt"))
	assert.False(t, ns.Exists("/pack1/old.txt"))
	assert.True(t, ns.Exists("/qml/main.qml"))

	data, err := ns.ReadFile("qml/main.qml")
	require.NoError(t, err)
	assert.Equal(t, "Item {}", string(data))
}

func TestNamespaceFS(t *testing.T) {
	bundled := fstest.MapFS{
		"config/defaults.ini": &fstest.MapFile{Data: []byte("a=1\n")},
	}
	fsys := NewNamespace(bundled).FS()

	f, err := fsys.Open("config/defaults.ini")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = fsys.Open("/config/defaults.ini")
	assert.Error(t, err)
}

func TestNestedPrefix(t *testing.T) {
	dir := t.TempDir()
	outer := filepath.Join(dir, "outer.rcc")
	inner := filepath.Join(dir, "inner.rcc")
	writeZip(t, outer, map[string]string{"o.txt": "outer"})
	writeZip(t, inner, map[string]string{"i.txt": "inner"})

	ns := NewNamespace(nil)
	require.NoError(t, ns.Register(outer, "/themes/"))
	require.NoError(t, ns.Register(inner, "/themes/dark/"))

	assert.True(t, ns.Exists("/themes/o.txt"))
	assert.True(t, ns.Exists("/themes/dark/i.txt"))
	assert.False(t, ns.Exists("/themes/dark/o.txt"))
	assert.Equal(t, []string{"/themes/", "/themes/dark/"}, ns.Mounts())

	require.NoError(t, ns.Close())
	assert.Empty(t, ns.Mounts())
}
