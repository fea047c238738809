package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sde-types-converter/internal/types"
)

// execute runs the root command with args from default flag values and
// returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if args == nil {
		// cobra falls back to os.Args when args is nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default. pflag keeps parsed values
// on the package-level rootCmd between executions.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
}

func readGzip(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	return string(data)
}

func writeArchive(t *testing.T, path, body string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(types.DefaultEntryName)
	require.NoError(t, err)
	_, err = io.WriteString(w, body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestRootCommand_Convert(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	input := filepath.Join(dir, "dump.zip")
	output := filepath.Join(dir, "out.json.gz")
	writeArchive(t, input, "100: {name: {en: Tritanium}, groupID: 18, marketGroupID: 5}\n200: {name: {en: Pod}, groupID: 6}\n")

	stdout, _, err := execute(t, "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 1 of 2 types")

	assert.Equal(t, `[{"id":100,"name":{"en":"Tritanium"},"groupID":18}]`, readGzip(t, output))
}

func TestRootCommand_NoArgsUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeArchive(t, filepath.Join(dir, "sde.zip"), "100: {name: {en: Tritanium}, groupID: 18, marketGroupID: 5}\n")

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Exported 1 of 1 types to types.json.gz")
	assert.Equal(t, `[{"id":100,"name":{"en":"Tritanium"},"groupID":18}]`, readGzip(t, filepath.Join(dir, "types.json.gz")))
}

func TestRootCommand_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeArchive(t, filepath.Join(dir, "sde.zip"), "100: {name: {en: a}, groupID: 1, marketGroupID: 1}\n")

	_, _, err := execute(t, "-o", "first.json.gz")
	require.NoError(t, err)

	_, _, err = execute(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "types.json.gz"))
}

func TestRootCommand_ConfigPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		env        string
		configFile string
		want       string
	}{
		{
			name: "default",
			want: "types.json.gz",
		},
		{
			name:       "config file over default",
			configFile: "output: file.json.gz\n",
			want:       "file.json.gz",
		},
		{
			name:       "env over config file",
			env:        "env.json.gz",
			configFile: "output: file.json.gz\n",
			want:       "env.json.gz",
		},
		{
			name:       "flag over env",
			args:       []string{"-o", "flag.json.gz"},
			env:        "env.json.gz",
			configFile: "output: file.json.gz\n",
			want:       "flag.json.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			writeArchive(t, filepath.Join(dir, "sde.zip"), "100: {name: {en: a}, groupID: 1, marketGroupID: 1}\n")
			if tt.env != "" {
				t.Setenv("SDECONV_OUTPUT", tt.env)
			}
			if tt.configFile != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "sdeconv.yaml"), []byte(tt.configFile), 0644))
			}

			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "to "+tt.want)

			for _, name := range []string{"types.json.gz", "file.json.gz", "env.json.gz", "flag.json.gz"} {
				if name == tt.want {
					assert.FileExists(t, filepath.Join(dir, name))
				} else {
					assert.NoFileExists(t, filepath.Join(dir, name))
				}
			}
		})
	}
}

func TestRootCommand_MissingEntry(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	input := filepath.Join(dir, "empty.zip")
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	_, _, err = execute(t, "-i", input, "-o", filepath.Join(dir, "out.json.gz"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrEntryNotFound))
	assert.NoFileExists(t, filepath.Join(dir, "out.json.gz"))
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SDE Types Converter")
	assert.Contains(t, stdout, "Version:    "+Version)
}
