package textsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_ReadsAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codice.txt")
	require.NoError(t, os.WriteFile(path, []byte("pagina uno\fpagina due"), 0644))

	text, err := NewFile(path).Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pagina uno\npagina due", text)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.txt")).Text(context.Background())
	assert.Error(t, err)
}

func TestStringSource(t *testing.T) {
	text, err := StringSource("inline").Text(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inline", text)
}
