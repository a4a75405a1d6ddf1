package iotools

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsurePathExists creates the directory path and its parents if they
// do not exist. It fails if path exists and is not a directory.
func EnsurePathExists(path string) error {
	fi, err := os.Stat(path)
	if err == nil {
		if !fi.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Classify(err)
	}
	return nil
}

// JoinPath joins a directory and a file name. An empty dir gives name.
func JoinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// WriteFile writes data to path, compressing it according to the suffix
// of path.
func WriteFile(path string, data []byte) error {
	d, err := Compress(data, CompressionFor(path))
	if err != nil {
		return err
	}
	return Classify(os.WriteFile(path, d, 0o644))
}
