package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/arrgate/internal/config"
	"github.com/vmunix/arrgate/internal/library"
)

func setupStore(t *testing.T) *library.Store {
	t.Helper()
	db, err := library.Open(":memory:")
	require.NoError(t, err, "open db")
	t.Cleanup(func() { _ = db.Close() })
	return library.NewStore(db)
}

func testConfig() *config.Config {
	return &config.Config{
		Quality: config.QualityConfig{Profiles: map[string]config.ProfileConfig{
			"hd": {
				Qualities: []string{"Bluray-1080p", "WEBDL-1080p", "HDTV-1080p"},
				Formats:   map[string]int{"x265": 5, "HDR": 10},
			},
			"uhd": {
				Qualities: []string{"Remux-2160p", "Bluray-2160p", "Bluray-1080p", "WEBDL-1080p", "HDTV-1080p"},
				Formats:   map[string]int{"HDR": 20},
			},
		}},
		Formats: []config.FormatConfig{
			{Name: "x265", Conditions: []config.ConditionConfig{{Type: "codec", Value: "x265"}}},
			{Name: "HDR", Conditions: []config.ConditionConfig{{Type: "hdr", Value: "any"}}},
		},
	}
}

// writeFile creates a file of size bytes under dir, creating parents.
func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}
