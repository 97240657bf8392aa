package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDictionary = `apple
apricot
banana
blueberry
cherry
grape
lemon
mango
melon
peach
`

func writeDictionary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunGeneratesWords(t *testing.T) {
	dict := writeDictionary(t, testDictionary)

	code, stdout, stderr := runCLI(t, "-n", "25", dict, "3", "8")
	require.Equal(t, exitOK, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 25)
	for _, w := range lines {
		require.GreaterOrEqual(t, len(w), 3)
		require.LessOrEqual(t, len(w), 8)
		require.Equal(t, strings.ToLower(w), w)
	}
}

func TestRunSeedIsDeterministic(t *testing.T) {
	dict := writeDictionary(t, testDictionary)

	code, first, _ := runCLI(t, "-seed", "42", "-n", "10", dict, "2", "9")
	require.Equal(t, exitOK, code)
	code, second, _ := runCLI(t, "-seed", "42", "-n", "10", dict, "2", "9")
	require.Equal(t, exitOK, code)
	require.Equal(t, first, second)
}

func TestRunWritesOutputFile(t *testing.T) {
	dict := writeDictionary(t, testDictionary)
	out := filepath.Join(t.TempDir(), "names.txt")

	code, stdout, stderr := runCLI(t, "-n", "5", "-o", out, dict, "4", "6")
	require.Equal(t, exitOK, code, stderr)
	require.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), 5)
}

func TestRunStats(t *testing.T) {
	dict := writeDictionary(t, "cat\ncar\ncan\n")

	code, stdout, stderr := runCLI(t, "-stats", dict)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stdout, "words:           3\n")
	require.Contains(t, stdout, "transitions:     8\n")
	require.Contains(t, stdout, "alphabet size:   5\n")
}

func TestRunErrors(t *testing.T) {
	dict := writeDictionary(t, testDictionary)
	empty := writeDictionary(t, "")
	accented := writeDictionary(t, "café\n")

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"min above max", []string{dict, "8", "3"}, "invalid length bounds"},
		{"negative min", []string{dict, "-1", "3"}, "invalid length bounds"},
		{"not a number", []string{dict, "three", "8"}, "invalid length bounds"},
		{"missing arguments", []string{dict, "3"}, "expected <dictionary>"},
		{"missing dictionary", []string{filepath.Join(t.TempDir(), "nope.txt"), "3", "8"}, "no such dictionary"},
		{"empty dictionary", []string{empty, "3", "8"}, "model has no starting transitions"},
		{"unsupported character", []string{accented, "3", "8"}, "line 1"},
		{"bad charset", []string{"-charset", "ebcdic", dict, "3", "8"}, "invalid configuration"},
		{"unreachable length", []string{"-max-attempts", "100", dict, "30", "40"}, "generation attempts exhausted"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tc.args...)
			require.Equal(t, exitError, code)
			require.Empty(t, stdout)
			require.Contains(t, stderr, tc.wantErr)
		})
	}
}

func TestRunSkipPolicy(t *testing.T) {
	dict := writeDictionary(t, "café\nbanana\nbandana\n")

	code, stdout, stderr := runCLI(t, "-charset", "skip", "-n", "3", dict, "1", "10")
	require.Equal(t, exitOK, code, stderr)
	require.NotContains(t, stdout, "é")
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "-version")
	require.Equal(t, exitOK, code)
	require.True(t, strings.HasPrefix(stdout, "randname dev"))
}

func TestRunConfigFile(t *testing.T) {
	dict := writeDictionary(t, testDictionary)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("count: 4\nseed: 7\n"), 0o644))

	code, stdout, stderr := runCLI(t, "-config", path, dict, "3", "8")
	require.Equal(t, exitOK, code, stderr)
	require.Len(t, strings.Split(strings.TrimSuffix(stdout, "\n"), "\n"), 4)

	// Flags override the file.
	code, stdout, stderr = runCLI(t, "-config="+path, "-n", "2", dict, "3", "8")
	require.Equal(t, exitOK, code, stderr)
	require.Len(t, strings.Split(strings.TrimSuffix(stdout, "\n"), "\n"), 2)
}

func TestConfigPathFromArgs(t *testing.T) {
	require.Equal(t, "a.json", configPathFromArgs([]string{"-n", "3", "-config", "a.json", "words.txt"}))
	require.Equal(t, "b.yaml", configPathFromArgs([]string{"--config=b.yaml"}))
	require.Equal(t, "", configPathFromArgs([]string{"-n", "3", "words.txt", "1", "5"}))
	require.Equal(t, "", configPathFromArgs([]string{"--", "-config", "c.json"}))
}
