package interpreter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/otiai10/copy"
)

// copyOptions keeps timestamps and copies what symlinks point at.
func copyOptions() copy.Options {
	return copy.Options{
		PreserveTimes: true,
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
	}
}

// movePath renames src to dst. An existing directory dst receives src
// inside it. Renames that cross a device boundary fall back to copy+remove.
func movePath(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return err
	}
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
		if _, err := os.Lstat(dst); err == nil {
			return &fs.PathError{Op: "mv", Path: dst, Err: fs.ErrExist}
		}
	}

	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copy.Copy(src, dst, copyOptions()); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// copyPath copies a file (into dst when dst is a directory) or a whole tree.
// Tree copies refuse an existing destination.
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if info.IsDir() {
		if _, err := os.Lstat(dst); err == nil {
			return &fs.PathError{Op: "cp", Path: dst, Err: fs.ErrExist}
		}
		return copy.Copy(src, dst, copyOptions())
	}

	if target, err := os.Stat(dst); err == nil && target.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	return copy.Copy(src, dst, copyOptions())
}
