package interpreter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/doeshing/termsim/internal/domain"
	"github.com/doeshing/termsim/internal/pkg/filesystem"
)

func (in *Interpreter) ls(args []string) (domain.Result, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if res, ok := expectedFailure(err, notFoundMessage("Directory", path), deniedMessage(path)); ok {
			return res, nil
		}
		return domain.Result{}, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return domain.OK(strings.Join(names, "\n")), nil
}

func (in *Interpreter) cd(args []string) (domain.Result, error) {
	path := filesystem.UserHomeDir()
	if len(args) > 0 {
		path = args[0]
	}

	if err := os.Chdir(path); err != nil {
		if res, ok := expectedFailure(err, notFoundMessage("Directory", path), deniedMessage(path)); ok {
			return res, nil
		}
		return domain.Result{}, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.Result{}, fmt.Errorf("resolve working directory: %w", err)
	}
	in.workingDirectory = wd
	return domain.OK(""), nil
}

func (in *Interpreter) pwd([]string) (domain.Result, error) {
	return domain.OK(in.workingDirectory), nil
}

func (in *Interpreter) mkdir(args []string) (domain.Result, error) {
	if len(args) == 0 {
		return domain.UsageError("mkdir"), nil
	}
	for _, path := range args {
		if err := os.MkdirAll(path, domain.DirectoryPermissions); err != nil {
			if res, ok := expectedFailure(err, "", deniedMessage(path)); ok {
				return res, nil
			}
			return domain.Result{}, err
		}
	}
	return domain.OK(""), nil
}

func (in *Interpreter) rmdir(args []string) (domain.Result, error) {
	if len(args) == 0 {
		return domain.UsageError("rmdir"), nil
	}
	for _, path := range args {
		info, err := os.Lstat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.OSFailure(notFoundMessage("Directory", path)), nil
			}
			return cannotRemove(err), nil
		}
		if !info.IsDir() {
			return cannotRemove(&fs.PathError{Op: "rmdir", Path: path, Err: errNotDirectory}), nil
		}
		if err := os.Remove(path); err != nil {
			return cannotRemove(err), nil
		}
	}
	return domain.OK(""), nil
}

var errNotDirectory = errors.New("not a directory")

func cannotRemove(err error) domain.Result {
	return domain.OSFailure(fmt.Sprintf("Cannot remove directory: %v", err))
}

func (in *Interpreter) rm(args []string) (domain.Result, error) {
	if len(args) == 0 {
		return domain.UsageError("rm"), nil
	}
	for _, path := range args {
		if err := removePath(path); err != nil {
			if res, ok := expectedFailure(err, notFoundMessage("File", path), deniedMessage(path)); ok {
				return res, nil
			}
			return domain.Result{}, err
		}
	}
	return domain.OK(""), nil
}

// removePath deletes a file, a symlink, or a whole directory tree. Unlike
// os.RemoveAll it reports a missing target.
func removePath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

func (in *Interpreter) touch(args []string) (domain.Result, error) {
	if len(args) == 0 {
		return domain.UsageError("touch"), nil
	}
	for _, path := range args {
		if err := touchPath(path, in.now()); err != nil {
			if res, ok := expectedFailure(err, "", deniedMessage(path)); ok {
				return res, nil
			}
			return domain.Result{}, err
		}
	}
	return domain.OK(""), nil
}

func touchPath(path string, now time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePermissions)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chtimes(path, now, now)
}

func (in *Interpreter) cat(args []string) (domain.Result, error) {
	if len(args) == 0 {
		return domain.UsageError("cat"), nil
	}
	contents := make([]string, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			if res, ok := expectedFailure(err, notFoundMessage("File", path), deniedMessage(path)); ok {
				return res, nil
			}
			return domain.Result{}, err
		}
		contents = append(contents, string(data))
	}
	return domain.OK(strings.Join(contents, "\n")), nil
}

func (in *Interpreter) echo(args []string) (domain.Result, error) {
	return domain.OK(strings.Join(args, " ")), nil
}

func (in *Interpreter) mv(args []string) (domain.Result, error) {
	if len(args) < 2 {
		return domain.UsageError("mv"), nil
	}
	src, dst := args[0], args[1]
	if err := movePath(src, dst); err != nil {
		if res, ok := expectedFailure(err, notFoundMessage("File", src), "Permission denied"); ok {
			return res, nil
		}
		return domain.Result{}, err
	}
	return domain.OK(""), nil
}

func (in *Interpreter) cp(args []string) (domain.Result, error) {
	if len(args) < 2 {
		return domain.UsageError("cp"), nil
	}
	src, dst := args[0], args[1]
	if err := copyPath(src, dst); err != nil {
		if res, ok := expectedFailure(err, notFoundMessage("File", src), "Permission denied"); ok {
			return res, nil
		}
		return domain.Result{}, err
	}
	return domain.OK(""), nil
}
