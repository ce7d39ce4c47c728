//go:build windows

package storage

import "os"

// renameio does not support Windows.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
