package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testConfigTOML = `
[log]
level = "warn"

[quality]
default = ["hd"]

[quality.profiles.hd]
qualities = ["Bluray-1080p", "WEBDL-1080p", "HDTV-1080p"]

[quality.profiles.hd.formats]
x265 = 5

[quality.profiles.uhd]
qualities = ["Remux-2160p", "Bluray-2160p", "Bluray-1080p", "WEBDL-1080p", "HDTV-1080p"]

[[formats]]
name = "x265"
[[formats.conditions]]
type = "codec"
value = "x265"
`

// setupCLI writes a config with a fresh database and returns its path.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[database]\npath = \"" + filepath.Join(dir, "data", "arrgate.db") + "\"\n" + testConfigTOML
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// runCLI executes the root command and returns stdout, stderr and the error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag in the tree to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
