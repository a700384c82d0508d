package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".m4v": true,
	".ts": true, ".wmv": true, ".mov": true, ".mpg": true,
}

// IsVideoFile reports whether path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSample reports whether the file name marks a sample clip.
func IsSample(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "sample")
}

// FindLargestVideo finds the largest video file in a directory tree.
// Returns ErrNoVideoFile if no video files are found.
// Skips files with "sample" in the name.
func FindLargestVideo(dir string) (string, int64, error) {
	var largestPath string
	var largestSize int64

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.IsDir() || !IsVideoFile(path) || IsSample(path) {
			return nil
		}
		if largestPath == "" || info.Size() > largestSize {
			largestSize = info.Size()
			largestPath = path
		}
		return nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("walk directory: %w", err)
	}

	if largestPath == "" {
		return "", 0, fmt.Errorf("%w in %s", ErrNoVideoFile, dir)
	}
	return largestPath, largestSize, nil
}

// resolveVideo returns the video at path. A directory resolves to its
// largest video and also names the release folder.
func resolveVideo(path string) (file, folder string, size int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", 0, fmt.Errorf("stat candidate: %w", err)
	}
	if info.IsDir() {
		file, size, err = FindLargestVideo(path)
		if err != nil {
			return "", "", 0, err
		}
		return file, filepath.Base(filepath.Clean(path)), size, nil
	}
	if !IsVideoFile(path) {
		return "", "", 0, fmt.Errorf("%w: %s", ErrNoVideoFile, path)
	}
	return path, "", info.Size(), nil
}
