package fsutil

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD5ForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	touch(t, path, "hello world")

	sum, err := MD5ForFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", hex.EncodeToString(sum))

	_, err = MD5ForFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFilesAreIdentical(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		contentA string
		contentB string
		want     bool
	}{
		{name: "identical", contentA: "same content", contentB: "same content", want: true},
		{name: "same_size_different_content", contentA: "aaaa", contentB: "bbbb", want: false},
		{name: "different_size", contentA: "short", contentB: "much longer content", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := filepath.Join(dir, tt.name+"_a")
			b := filepath.Join(dir, tt.name+"_b")
			touch(t, a, tt.contentA)
			touch(t, b, tt.contentB)

			got, err := FilesAreIdentical(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifiedCopy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	touch(t, src, "payload")

	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, VerifiedCopy(ctx, src, dst))

	same, err := FilesAreIdentical(src, dst)
	require.NoError(t, err)
	assert.True(t, same, "copy should match the source")

	err = VerifiedCopy(ctx, src, dst)
	assert.Error(t, err, "copying over an existing file should fail")
}

func TestCopyWithVersion(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := filepath.Join(dir, "render.exr")
	touch(t, src, "image data")
	dest := filepath.Join(dir, "versions")
	require.NoError(t, os.Mkdir(dest, 0o755))

	first, err := CopyWithVersion(ctx, VersionedCopyOptions{Source: src, DestDir: dest})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "render.v0001.exr"), first)

	second, err := CopyWithVersion(ctx, VersionedCopyOptions{Source: src, DestDir: dest})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "render.v0002.exr"), second,
		"an occupied version slot should be skipped")

	custom, err := CopyWithVersion(ctx, VersionedCopyOptions{
		Source:    src,
		DestDir:   dest,
		DestName:  "plate.exr",
		VerPrefix: "ver",
		NumDigits: 2,
		Verified:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "plate.ver01.exr"), custom)

	_, err = CopyWithVersion(ctx, VersionedCopyOptions{Source: filepath.Join(dir, "missing"), DestDir: dest})
	assert.Error(t, err, "a missing source should fail")
}

func TestCopyDeduplicated(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	ctx := context.Background()
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	destDir := filepath.Join(root, "dest")
	require.NoError(t, os.Mkdir(dataDir, 0o755))
	require.NoError(t, os.Mkdir(destDir, 0o755))

	src := filepath.Join(root, "asset.txt")
	touch(t, src, "asset contents")

	index, err := FilesKeyedBySize(dataDir)
	require.NoError(t, err)

	stored, err := CopyDeduplicated(ctx, DedupCopyOptions{
		Source:    src,
		DestDir:   destDir,
		DataDir:   dataDir,
		SizeIndex: index,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "asset.v0001.txt"), stored)

	link := filepath.Join(destDir, "asset.txt")
	resolved, err := filepath.EvalSymlinks(link)
	require.NoError(t, err, "destination should be a working symlink")
	realStored, err := filepath.EvalSymlinks(stored)
	require.NoError(t, err)
	assert.Equal(t, realStored, resolved, "link should point at the stored file")

	// A second file with identical content reuses the stored copy.
	src2 := filepath.Join(root, "asset_copy.txt")
	touch(t, src2, "asset contents")

	index, err = FilesKeyedBySize(dataDir)
	require.NoError(t, err)

	stored2, err := CopyDeduplicated(ctx, DedupCopyOptions{
		Source:    src2,
		DestDir:   destDir,
		DataDir:   dataDir,
		SizeIndex: index,
	})
	require.NoError(t, err)
	assert.Equal(t, stored, stored2, "identical content should deduplicate")

	files, err := ListFilesRecursive(dataDir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "only one copy should live in the data dir")
}

func TestCopyDeduplicated_DestInsideDataDir(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "dest"), 0o755))
	src := filepath.Join(root, "f.txt")
	touch(t, src, "x")

	_, err := CopyDeduplicated(context.Background(), DedupCopyOptions{
		Source:  src,
		DestDir: filepath.Join(dataDir, "dest"),
		DataDir: dataDir,
	})
	assert.Error(t, err, "destination inside the data dir must be rejected")
}
