package extension

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentuity/go-common/logger"
	"github.com/freshext/freshext/internal/util"
)

// Scan enumerates the immediate subdirectories of root and returns the
// metadata of every extension found there. Directories without a descriptor
// and entries that aren't directories are skipped. A descriptor that fails to
// parse skips that directory rather than aborting the whole scan.
// Order follows directory iteration and is not guaranteed to be sorted.
func Scan(logger logger.Logger, root string) ([]*Metadata, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
	}
	var found []*Metadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !util.Exists(filepath.Join(dir, MetadataFile)) {
			continue
		}
		md, err := ReadMetadata(dir)
		if err != nil {
			logger.Debug("skipping %s: %s", entry.Name(), err)
			continue
		}
		found = append(found, md)
	}
	return found, nil
}
