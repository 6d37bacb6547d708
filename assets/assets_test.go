package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundled(t *testing.T) {
	fsys := Bundled()

	data, err := fs.ReadFile(fsys, "scripts/bootstrap.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Resource.load")

	_, err = fs.Stat(fsys, "bundled")
	assert.Error(t, err)
}
