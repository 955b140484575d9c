package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveGeneratesUniqueName(t *testing.T) {
	s := New(t.TempDir(), "")

	name, err := s.Save("lechon.JPG", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".JPG"))
	assert.NotEqual(t, "lechon.JPG", name)

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	name2, err := s.Save("lechon.JPG", strings.NewReader("other"))
	require.NoError(t, err)
	assert.NotEqual(t, name, name2)
}

func TestSaveUploadNilHeader(t *testing.T) {
	s := New(t.TempDir(), "")
	name, err := s.SaveUpload(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPlaceholder, name)
}
