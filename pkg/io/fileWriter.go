package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// MakeDirForFile creates a directory specified in filePath. desc is used in
// the error message.
func MakeDirForFile(filePath string, desc string) error {
	fileName := filePath
	dir := filepath.Dir(fileName)
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("could not create dir for %s: %w", desc, err)
	}
	return nil
}
