package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/assetkit/internal/config"
	"github.com/GriffinCanCode/AgentOS/assetkit/internal/shared/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.Identity.Organization = "Acme"
	cfg.Identity.Application = "viewer"
	cfg.Resource.BaseURL = baseURL
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewWiresComponents(t *testing.T) {
	root := t.TempDir()
	srv, err := New(testConfig("http://127.0.0.1:1"), paths.RootedBases(root))
	require.NoError(t, err)
	defer srv.Close()

	assert.Equal(t, filepath.Join(root, "data", "Acme", "viewer"), srv.Store.DataPath())
	assert.Equal(t, srv.Store.DataPath(), srv.Fetcher.DataDir())
	assert.DirExists(t, srv.Store.DataPath())

	// Compiled-in assets resolve through the namespace and the store
	assert.True(t, srv.Namespace.Exists("/scripts/bootstrap.js"))
	text, err := srv.Store.Read("res://scripts/bootstrap.js")
	require.NoError(t, err)
	assert.Contains(t, text, "Resource.load")
}

func TestNewCustomDataDir(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Resource.DataDir = filepath.Join(t.TempDir(), "bundles")

	srv, err := New(cfg, paths.RootedBases(t.TempDir()))
	require.NoError(t, err)
	defer srv.Close()

	assert.Equal(t, cfg.Resource.DataDir, srv.Fetcher.DataDir())
	assert.DirExists(t, cfg.Resource.DataDir)
}

func TestNewInvalidLogLevel(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Logging.Level = "loud"

	_, err := New(cfg, paths.RootedBases(t.TempDir()))
	assert.Error(t, err)
}

func TestRunBundledBootstrap(t *testing.T) {
	bundles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/base.rcc" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("base bundle"))
	}))
	defer bundles.Close()

	srv, err := New(testConfig(bundles.URL), paths.RootedBases(t.TempDir()))
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, srv.RunScript(ctx, "res://scripts/bootstrap.js"))

	assert.True(t, srv.Fetcher.Available("base"))
	assert.True(t, srv.Fetcher.Registered("base"))
	assert.True(t, srv.Namespace.Exists("/base/"))
}

func TestFetcherLoadsWithoutScript(t *testing.T) {
	bundles := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("B"))
	}))
	defer bundles.Close()

	srv, err := New(testConfig(bundles.URL), paths.RootedBases(t.TempDir()))
	require.NoError(t, err)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := srv.Fetcher.Load(ctx, "pack1").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Bytes)
	assert.True(t, srv.Fetcher.Available("pack1"))
	assert.True(t, srv.Namespace.Exists("/pack1/"))

	// Same after a script has run
	require.NoError(t, srv.Scripts.Run(ctx, `Resource.load("pack2");`, "load.js"))
	_, err = srv.Fetcher.Load(ctx, "pack3").Wait(ctx)
	require.NoError(t, err)
	assert.True(t, srv.Fetcher.Registered("pack2"))
	assert.True(t, srv.Fetcher.Registered("pack3"))
}

func TestRunScriptFromDisk(t *testing.T) {
	root := t.TempDir()
	srv, err := New(testConfig("http://127.0.0.1:1"), paths.RootedBases(root))
	require.NoError(t, err)
	defer srv.Close()

	path := filepath.Join(root, "make.js")
	target := filepath.Join(root, "made.txt")
	require.NoError(t, os.WriteFile(path, []byte(`Env.write("made", "`+filepath.ToSlash(target)+`");`), 0o644))

	require.NoError(t, srv.RunScript(context.Background(), path))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "made", string(data))

	assert.Error(t, srv.RunScript(context.Background(), "res://scripts/missing.js"))
}

func TestRegistryGathers(t *testing.T) {
	srv, err := New(testConfig("http://127.0.0.1:1"), paths.RootedBases(t.TempDir()))
	require.NoError(t, err)
	defer srv.Close()

	families, err := srv.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["assetkit_bundles_mounted"])
	assert.True(t, names["go_goroutines"])
}
