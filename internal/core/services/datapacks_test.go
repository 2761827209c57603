package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcompose/mcc/internal/config"
)

const installedDir = "data/world/datapacks"

func datapacksConfig(packs map[string]string) *config.Config {
	cfg := testConfig()
	cfg.Datapacks = packs
	return cfg
}

// datapacksFS registers the installed directory as existing and
// resolvable, which every sync needs.
func datapacksFS() *fakeFS {
	fs := newFakeFS()
	fs.dirs[installedDir] = true
	fs.canonical[installedDir] = "/abs/" + installedDir
	return fs
}

func TestSyncCreatesMissingDirectory(t *testing.T) {
	fs := newFakeFS()
	fs.canonical[installedDir] = "/abs/" + installedDir
	files := NewFiles(fs)

	err := files.SyncDatapacks(datapacksConfig(nil))

	require.NoError(t, err)
	assert.Equal(t, []string{installedDir}, fs.madeDirs)
}

func TestSyncInstallsDesiredDatapacks(t *testing.T) {
	fs := datapacksFS()
	fs.canonical["datapacks/src/a"] = "/abs/datapacks/src/a"
	files := NewFiles(fs)

	err := files.SyncDatapacks(datapacksConfig(map[string]string{"a": "src/a"}))

	require.NoError(t, err)
	require.Len(t, fs.copies, 1)
	assert.Equal(t, "/abs/datapacks/src/a", fs.copies[0].src)
	assert.Equal(t, "/abs/"+installedDir+"/a.zip", fs.copies[0].dst)
	assert.Empty(t, fs.deleted)
}

func TestSyncRemovesUnexpectedAndOverwritesDesired(t *testing.T) {
	fs := datapacksFS()
	fs.canonical["datapacks/src/a"] = "/abs/datapacks/src/a"
	fs.listing["/abs/"+installedDir] = []string{
		"/abs/" + installedDir + "/a.zip",
		"/abs/" + installedDir + "/b.zip",
	}
	files := NewFiles(fs)

	err := files.SyncDatapacks(datapacksConfig(map[string]string{"a": "src/a"}))

	require.NoError(t, err)
	// b.zip is uninstalled, a.zip is overwritten in place.
	assert.Equal(t, []string{"/abs/" + installedDir + "/b.zip"}, fs.deleted)
	require.Len(t, fs.copies, 1)
	assert.Equal(t, "/abs/"+installedDir+"/a.zip", fs.copies[0].dst)
}

func TestSyncSkipsUnresolvableSource(t *testing.T) {
	fs := datapacksFS()
	fs.canonical["datapacks/src/good"] = "/abs/datapacks/src/good"
	files := NewFiles(fs)

	err := files.SyncDatapacks(datapacksConfig(map[string]string{
		"good":    "src/good",
		"missing": "src/missing",
	}))

	// One unresolvable source does not fail the sync or block the rest.
	require.NoError(t, err)
	require.Len(t, fs.copies, 1)
	assert.Equal(t, "/abs/"+installedDir+"/good.zip", fs.copies[0].dst)
}

func TestSyncEmptyManifestClearsDirectory(t *testing.T) {
	fs := datapacksFS()
	fs.listing["/abs/"+installedDir] = []string{
		"/abs/" + installedDir + "/stale.zip",
	}
	files := NewFiles(fs)

	err := files.SyncDatapacks(datapacksConfig(nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"/abs/" + installedDir + "/stale.zip"}, fs.deleted)
	assert.Empty(t, fs.copies)
}
