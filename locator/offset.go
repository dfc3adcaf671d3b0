package locator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lyraproj/homelocator/api"
	"github.com/lyraproj/issue/issue"
)

// applyRelativePath returns the canonical path of relativePath applied to anchor. Symbolic links
// are evaluated before each segment is applied so that ".." moves to the parent of the directory
// that a link points to, not to the parent of the link.
func applyRelativePath(anchor string, relativePath *string) (string, error) {
	abs, err := filepath.Abs(anchor)
	if err != nil {
		return ``, api.Error(api.FilesystemFailure, issue.H{`path`: anchor, `detail`: err.Error()})
	}
	current, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ``, statError(abs, err)
	}
	if relativePath == nil {
		return current, nil
	}
	for _, seg := range strings.Split(filepath.ToSlash(*relativePath), `/`) {
		switch seg {
		case ``, `.`:
		case `..`:
			if err = mustBeDirectory(current); err != nil {
				return ``, err
			}
			current = filepath.Dir(current)
		default:
			next := filepath.Join(current, seg)
			if current, err = filepath.EvalSymlinks(next); err != nil {
				return ``, statError(next, err)
			}
		}
	}
	return current, nil
}

// canonicalDirectory checks that the canonical path is an existing directory.
func canonicalDirectory(canonical string) (string, error) {
	fi, err := os.Stat(canonical)
	if err != nil {
		return ``, statError(canonical, err)
	}
	if !fi.IsDir() {
		return ``, api.Error(api.NotADirectory, issue.H{`path`: canonical})
	}
	return canonical, nil
}

// mustBeDirectory fails the way the platform does when ".." follows something that isn't a
// directory.
func mustBeDirectory(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return statError(path, err)
	}
	if !fi.IsDir() {
		return statError(path, syscall.ENOTDIR)
	}
	return nil
}

func statError(path string, err error) error {
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return api.Error(api.NonExistingDirectory, issue.H{`path`: path})
	}
	return api.Error(api.FilesystemFailure, issue.H{`path`: path, `detail`: err.Error()})
}
