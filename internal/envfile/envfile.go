package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultName is the file looked up when no explicit name is configured.
const DefaultName = ".env"

// ErrNotFound is returned when no env file exists in the searched directories.
var ErrNotFound = errors.New("env file not found")

// Find locates name starting at the working directory and walking up to the
// filesystem root.
func Find(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return FindFrom(dir, name)
}

// FindFrom locates name starting at dir and walking up the directory tree.
// Absolute names are only checked in place.
func FindFrom(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for {
		candidate := filepath.Join(dir, name)
		if isFile(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load exports the variables defined in path without overriding variables
// that are already present. A missing file is reported as loaded=false and no
// error; a malformed or unreadable file is an error.
func Load(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load env file %s: %w", path, err)
	}
	return true, nil
}

// Autoload finds name and loads it. It returns the path that was loaded, or an
// empty string when the default file does not exist. A file named explicitly
// (any name other than DefaultName) must exist.
func Autoload(name string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	optional := name == DefaultName

	path, err := Find(name)
	if err != nil {
		if optional && errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	loaded, err := Load(path)
	if err != nil {
		return "", err
	}
	if !loaded {
		if optional {
			return "", nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return path, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
