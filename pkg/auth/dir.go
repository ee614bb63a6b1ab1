package auth

import (
	"context"
	"os"
	"path/filepath"

	"github.com/voidshard/jobgate/internal/utils"
)

// DirRegistry treats every directory directly under a root as a credential; the directory
// name is the key.
type DirRegistry struct {
	root string
}

// NewDirRegistry returns a registry rooted at the given directory.
func NewDirRegistry(root string) *DirRegistry {
	return &DirRegistry{root: root}
}

// Exists returns if a directory named by key exists under the root.
// Keys that aren't simple names are never looked up.
func (d *DirRegistry) Exists(ctx context.Context, key string) (bool, error) {
	if !utils.IsValidName(key) {
		return false, nil
	}
	info, err := os.Stat(filepath.Join(d.root, key))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
