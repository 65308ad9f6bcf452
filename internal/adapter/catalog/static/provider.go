package staticdocs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Hi-Berry/GaiaProjectWeb-sub000/internal/app/ports"
)

// Provider reads the rules reference from a directory holding index.json
// and the documents it lists.
type Provider struct {
	Root string
}

func (p Provider) Index(_ context.Context) ([]byte, error) {
	return readFile(filepath.Join(p.Root, "index.json"))
}

func (p Provider) File(_ context.Context, path string) ([]byte, error) {
	safePath, err := secureJoin(p.Root, path)
	if err != nil {
		return nil, err
	}
	return readFile(safePath)
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrNotFound
	}
	return b, err
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ports.ErrInvalidDocPath
	}
	if filepath.IsAbs(rel) {
		return "", ports.ErrInvalidDocPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ports.ErrInvalidDocPath
	}
	return target, nil
}
