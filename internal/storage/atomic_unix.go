//go:build !windows

package storage

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic replaces filename so readers never see a partial state file.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
