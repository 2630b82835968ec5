// Package fsutil provides stateless filesystem helpers: existence checks,
// directory listing and matching, checksums, and the verified, versioned,
// and deduplicated copy operations bvz tools share.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// Exists reports whether a path exists on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether a path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether a path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// UnixPathToOS reformats a unix-style path string into the separator of the
// current OS. The path does not have to exist.
func UnixPathToOS(path string) string {
	parts := strings.Split(strings.TrimLeft(path, "/"), "/")
	return filepath.Join(parts...)
}

// InvertDirList returns the names of subdirectories of parent that are NOT
// in the exclude list. When pattern is non-empty, only names matching the
// regex are considered.
func InvertDirList(parent string, exclude []string, pattern string) ([]string, error) {
	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = regexp.Compile(pattern); err != nil {
			return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
		}
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", parent, err)
	}

	var output []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := excluded[entry.Name()]; ok {
			continue
		}
		if re != nil && !re.MatchString(entry.Name()) {
			continue
		}
		output = append(output, entry.Name())
	}

	return output, nil
}

// SymlinksToRealPaths resolves each path in the list to its real path.
// Paths that are not symlinks come back unchanged (but cleaned).
func SymlinksToRealPaths(paths []string) ([]string, error) {
	output := make([]string, 0, len(paths))
	for _, path := range paths {
		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", path, err)
		}
		output = append(output, real)
	}
	return output, nil
}

// ListFilesRecursive lists every file in the given directories and all of
// their subdirectories, with full paths.
func ListFilesRecursive(dirs ...string) ([]string, error) {
	var output []string

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				output = append(output, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking %s: %w", dir, err)
		}
	}

	return output, nil
}

// ListFilesMatching lists the files under dir whose relative path matches
// the given glob pattern. Doublestar (**) patterns are supported.
func ListFilesMatching(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %q under %s: %w", pattern, dir, err)
	}

	output := make([]string, 0, len(matches))
	for _, match := range matches {
		output = append(output, filepath.Join(dir, match))
	}
	return output, nil
}

// FilesKeyedBySize builds an index of the files directly inside dir, keyed
// by file size. Subdirectories are not traversed.
func FilesKeyedBySize(dir string) (map[int64][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("listing %s: %w", dir, err)
	}

	output := make(map[int64][]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.Errorf("stat %s: %w", entry.Name(), err)
		}
		output[info.Size()] = append(output[info.Size()], filepath.Join(dir, entry.Name()))
	}

	return output, nil
}

// AncestorContainsFile walks up the directory tree from path looking for
// the first ancestor directory that contains any of the named files,
// typically a semaphore file. depth limits how many levels up to look,
// 0 means unlimited. Returns "" when no ancestor contains one.
func AncestorContainsFile(path string, names []string, depth int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	count := 0
	test := filepath.Dir(filepath.Clean(path))
	for {
		for _, name := range names {
			if Exists(filepath.Join(test, name)) {
				return test, nil
			}
		}

		count++
		if depth > 0 && count >= depth {
			return "", nil
		}

		parent := filepath.Dir(test)
		if parent == test {
			return "", nil
		}
		test = parent
	}
}
