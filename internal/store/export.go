package store

import (
	"fmt"
	"os"
)

// WriteExport writes an encoded key to path. Secret encodings are written
// 0600, public ones 0644. An existing file is replaced only when overwrite
// is set.
func WriteExport(path string, data []byte, secret, overwrite bool) error {
	if path == "" {
		return fmt.Errorf("export: empty path")
	}
	if !overwrite {
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("export %s: %w", path, os.ErrExist)
		}
	}
	mode := PublicFileMode
	if secret {
		mode = SecretFileMode
	}
	if err := replaceFile(path, data, mode); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
