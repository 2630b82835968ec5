package fsutil

import (
	"bytes"
	"crypto/md5"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// MD5ForFile computes the md5 checksum of a file, streaming so large files
// are never read into memory in one chunk.
func MD5ForFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Errorf("checksumming %s: %w", path, err)
	}

	return h.Sum(nil), nil
}

// FilesAreIdentical compares two files by content, ignoring all metadata.
// Sizes are compared first so mismatched files are rejected without
// reading either one.
func FilesAreIdentical(pathA, pathB string) (bool, error) {
	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, errors.Errorf("stat %s: %w", pathA, err)
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, errors.Errorf("stat %s: %w", pathB, err)
	}

	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	md5A, err := MD5ForFile(pathA)
	if err != nil {
		return false, err
	}
	md5B, err := MD5ForFile(pathB)
	if err != nil {
		return false, err
	}

	return bytes.Equal(md5A, md5B), nil
}
