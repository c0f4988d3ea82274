package pkg

import (
	"fmt"
	"os"
)

// PathExists returns whether the given file or directory exists.
// An existing path of the other kind is reported as an error.
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// EnsureDir creates the directory (and parents) if it does not exist yet.
func EnsureDir(path string) error {
	exists, err := PathExists(path, true)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
