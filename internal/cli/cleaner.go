package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/attest/internal/errors"
)

// Cleaner removes generated registration files
type Cleaner struct {
	scanner *DirectoryScanner
}

func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles removes every attest_bindings.go below the given
// directories and returns the removed paths
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removed []string

	for _, dir := range directories {
		if strings.HasSuffix(dir, "/...") {
			baseDir := strings.TrimSuffix(dir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
				if err != nil || !d.IsDir() {
					return nil
				}
				return c.cleanSingleDirectory(path, &removed)
			})
			if err != nil {
				return removed, errors.WrapFileSystemError("clean", baseDir, err)
			}
			continue
		}
		if err := c.cleanSingleDirectory(dir, &removed); err != nil {
			return removed, err
		}
	}

	return removed, nil
}

func (c *Cleaner) cleanSingleDirectory(dir string, removed *[]string) error {
	target := filepath.Join(dir, GeneratedFileName)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.WrapFileSystemError("stat", target, err)
	}
	if err := os.Remove(target); err != nil {
		return errors.WrapFileSystemError("remove", target, err)
	}
	*removed = append(*removed, target)
	return nil
}
