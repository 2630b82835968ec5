package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// VersionedCopyOptions controls CopyWithVersion.
type VersionedCopyOptions struct {
	Source    string // file to copy
	DestDir   string // directory to copy into
	DestName  string // optional new name, defaults to the source name
	VerPrefix string // version prefix, defaults to "v"
	NumDigits int    // version padding, defaults to 4
	Verified  bool   // checksum the copy against the source
}

// DedupCopyOptions controls CopyDeduplicated.
type DedupCopyOptions struct {
	Source    string             // file to store
	DestDir   string             // where the symlink appears
	DataDir   string             // where file contents actually live
	SizeIndex map[int64][]string // FilesKeyedBySize(DataDir)
	DestName  string             // optional new name, defaults to the source name
	VerPrefix string
	NumDigits int
	Verified  bool
}

// copyFile copies src to dst, creating dst. Fails if dst already exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", dst, err)
	}
	return nil
}

// VerifiedCopy copies src to dst and then checksums both files, failing if
// the copy does not match the source. dst must not already exist.
func VerifiedCopy(ctx context.Context, src, dst string) error {
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("verified copy")

	if err := copyFile(src, dst); err != nil {
		return err
	}

	srcSum, err := MD5ForFile(src)
	if err != nil {
		return err
	}
	dstSum, err := MD5ForFile(dst)
	if err != nil {
		return err
	}

	if !bytes.Equal(srcSum, dstSum) {
		return errors.Errorf("verifying copy: md5 checksums do not match: %s -> %s", src, dst)
	}
	return nil
}

// CopyWithVersion copies a file into a directory, inserting a version
// number (like ".v0001") before the extension. If a file with that version
// already exists the number is incremented until a free slot is found, so
// nothing gets overwritten. Returns the path of the copy.
func CopyWithVersion(ctx context.Context, opts VersionedCopyOptions) (string, error) {
	if !IsFile(opts.Source) {
		return "", errors.Errorf("source is not a file: %s", opts.Source)
	}
	if !IsDir(opts.DestDir) {
		return "", errors.Errorf("destination is not a directory: %s", opts.DestDir)
	}

	name := opts.DestName
	if name == "" {
		name = filepath.Base(opts.Source)
	}
	prefix := opts.VerPrefix
	if prefix == "" {
		prefix = "v"
	}
	digits := opts.NumDigits
	if digits == 0 {
		digits = 4
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	// Not race condition safe, but fine for one-shot tool use.
	for v := 1; ; v++ {
		version := fmt.Sprintf(".%s%0*d", prefix, digits, v)
		dest := filepath.Join(opts.DestDir, base+version+ext)

		if Exists(dest) {
			continue
		}

		if opts.Verified {
			if err := VerifiedCopy(ctx, opts.Source, dest); err != nil {
				return "", err
			}
		} else {
			if err := copyFile(opts.Source, dest); err != nil {
				return "", err
			}
		}

		zerolog.Ctx(ctx).Debug().Str("src", opts.Source).Str("dst", dest).Msg("versioned copy")
		return dest, nil
	}
}

// CopyDeduplicated stores a file in a content-addressed data directory and
// places a relative symlink to it in the destination directory. If a file
// with identical content is already in the data dir (found via the size
// index, confirmed by md5), it is reused instead of copied again. Returns
// the path of the stored file inside the data dir.
func CopyDeduplicated(ctx context.Context, opts DedupCopyOptions) (string, error) {
	if strings.HasPrefix(filepath.Clean(opts.DestDir)+string(filepath.Separator),
		filepath.Clean(opts.DataDir)+string(filepath.Separator)) {
		return "", errors.Errorf("destination %s may not live inside the data dir %s",
			opts.DestDir, opts.DataDir)
	}
	if !IsFile(opts.Source) {
		return "", errors.Errorf("source is not a file: %s", opts.Source)
	}
	if !IsDir(opts.DataDir) {
		return "", errors.Errorf("data dir is not a directory: %s", opts.DataDir)
	}
	if !IsDir(opts.DestDir) {
		return "", errors.Errorf("destination is not a directory: %s", opts.DestDir)
	}

	name := opts.DestName
	if name == "" {
		name = filepath.Base(opts.Source)
	}

	info, err := os.Stat(opts.Source)
	if err != nil {
		return "", errors.Errorf("stat %s: %w", opts.Source, err)
	}

	// Candidates are files in the data dir of the same size.
	sourceSum, err := MD5ForFile(opts.Source)
	if err != nil {
		return "", err
	}

	var matched string
	for _, candidate := range opts.SizeIndex[info.Size()] {
		candidateSum, err := MD5ForFile(candidate)
		if err != nil {
			return "", err
		}
		if bytes.Equal(sourceSum, candidateSum) {
			matched = candidate
			break
		}
	}

	if matched == "" {
		matched, err = CopyWithVersion(ctx, VersionedCopyOptions{
			Source:    opts.Source,
			DestDir:   opts.DataDir,
			DestName:  name,
			VerPrefix: opts.VerPrefix,
			NumDigits: opts.NumDigits,
			Verified:  opts.Verified,
		})
		if err != nil {
			return "", err
		}
		zerolog.Ctx(ctx).Debug().Str("stored", matched).Msg("stored new file in data dir")
	} else {
		zerolog.Ctx(ctx).Debug().Str("matched", matched).Msg("deduplicated against existing file")
	}

	if err := os.Chmod(matched, 0o644); err != nil {
		return "", errors.Errorf("chmod %s: %w", matched, err)
	}

	// The symlink is relative so the whole tree can be moved as a unit.
	relDir, err := filepath.Rel(opts.DestDir, opts.DataDir)
	if err != nil {
		return "", errors.Errorf("relative path from %s to %s: %w", opts.DestDir, opts.DataDir, err)
	}

	link := filepath.Join(opts.DestDir, name)
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			return "", errors.Errorf("removing existing link %s: %w", link, err)
		}
	}
	if err := os.Symlink(filepath.Join(relDir, filepath.Base(matched)), link); err != nil {
		return "", errors.Errorf("linking %s: %w", link, err)
	}

	return matched, nil
}
