package staticdocs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

func TestProvider_IndexAndFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.json"), []byte(`{"docs":[]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "overview.md"), []byte("hello"), 0o644))

	p := Provider{Root: root}
	index, err := p.Index(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"docs":[]}`, string(index))

	b, err := p.File(context.Background(), "overview.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	_, err = p.File(context.Background(), "missing.md")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProvider_FileRejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(filepath.Dir(root), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })

	p := Provider{Root: root}
	for _, path := range []string{"../outside.txt", "", "/etc/passwd"} {
		_, err := p.File(context.Background(), path)
		assert.ErrorIs(t, err, ports.ErrInvalidDocPath, path)
	}
}

func TestProvider_ShippedRules(t *testing.T) {
	p := Provider{Root: filepath.Join("..", "..", "..", "..", "rules")}
	index, err := p.Index(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(index), "overview.md")

	b, err := p.File(context.Background(), "overview.md")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
