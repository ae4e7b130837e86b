package file_test

import (
	"path/filepath"
	"testing"

	"github.com/hugohadfield/locomapper-agent/pkg/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TestWriteJsonFile_CreatesParentDirs tests that writes create missing
// directories and round-trip through a plain read.
func TestWriteJsonFile_CreatesParentDirs(t *testing.T) {
	fs := file.NewFileService()
	path := filepath.Join(t.TempDir(), "a", "b", "data.json")

	require.NoError(t, fs.WriteJsonFile(path, payload{Name: "x", Value: 1.5}))

	exists, err := fs.IsFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	var got payload
	require.NoError(t, fs.ReadJsonFile(path, &got))
	assert.Equal(t, payload{Name: "x", Value: 1.5}, got)
}

// TestReadJsonFileStrict tests that unknown fields are rejected by the strict
// reader but tolerated by the plain one.
func TestReadJsonFileStrict(t *testing.T) {
	fs := file.NewFileService()
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, fs.WriteFileRaw(path, []byte(`{"name":"x","value":1.5,"extra":true}`)))

	var loose payload
	assert.NoError(t, fs.ReadJsonFile(path, &loose))

	var strict payload
	assert.Error(t, fs.ReadJsonFileStrict(path, &strict))
}
