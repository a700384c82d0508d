package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVideoFile(t *testing.T) {
	assert.True(t, IsVideoFile("/a/movie.mkv"))
	assert.True(t, IsVideoFile("movie.MP4"))
	assert.False(t, IsVideoFile("movie.nfo"))
	assert.False(t, IsVideoFile("movie"))
}

func TestIsSample(t *testing.T) {
	assert.True(t, IsSample("/dl/Heat.1995/heat-sample.mkv"))
	assert.True(t, IsSample("Sample.mkv"))
	assert.False(t, IsSample("/dl/sample-dir/heat.mkv"), "only the file name counts")
}

func TestFindLargestVideo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.mkv", 10)
	big := writeFile(t, dir, "sub/big.mp4", 100)
	writeFile(t, dir, "movie-sample.mkv", 500)
	writeFile(t, dir, "extras.nfo", 1000)

	path, size, err := FindLargestVideo(dir)
	require.NoError(t, err)
	assert.Equal(t, big, path)
	assert.Equal(t, int64(100), size)
}

func TestFindLargestVideo_None(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.txt", 10)

	_, _, err := FindLargestVideo(dir)
	assert.ErrorIs(t, err, ErrNoVideoFile)
}

func TestFindLargestVideo_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "movie.mkv", 0)

	path, _, err := FindLargestVideo(dir)
	require.NoError(t, err)
	assert.Equal(t, empty, path)
}

func TestResolveVideo(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Heat.1995.1080p.BluRay.x264-GRP")
	video := writeFile(t, dir, "heat.mkv", 42)

	file, folder, size, err := resolveVideo(dir)
	require.NoError(t, err)
	assert.Equal(t, video, file)
	assert.Equal(t, "Heat.1995.1080p.BluRay.x264-GRP", folder)
	assert.Equal(t, int64(42), size)

	file, folder, _, err = resolveVideo(video)
	require.NoError(t, err)
	assert.Equal(t, video, file)
	assert.Empty(t, folder)

	_, _, _, err = resolveVideo(writeFile(t, root, "notes.txt", 1))
	assert.ErrorIs(t, err, ErrNoVideoFile)

	_, _, _, err = resolveVideo(filepath.Join(root, "missing.mkv"))
	assert.Error(t, err)
}
