package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storyFile holds the sample blocks used across the scan tests.
const storyFile = `
  |  |  |  |  |  |  |  |  |
  |  |  |  |  |  |  |  |  |

    _  _     _  _  _  _  _
  | _| _||_||_ |_   ||_||_|
  ||_  _|  | _||_|  ||_| _|

 _  _  _  _  _  _  _  _  _
|_||_||_||_||_||_||_||_||_|
|_||_||_||_||_||_||_||_||_|

    _  _     _  _  _  _  _
  | _| _||_| _ |_   ||_||_|
  ||_  _|  | _||_|  ||_| _

 _  _  _  _  _  _  _  _  _
 _| _| _| _| _| _| _| _| _|
|_ |_ |_ |_ |_ |_ |_ |_ |_

`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func scanArgs(extra ...string) []string {
	base := []string{"scan", "--mode=correct", "--workers=2", "--debug-dir=", "--debug-scale=1", "--color=false", "--progress=false"}
	return append(base, extra...)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanFile(t *testing.T) {
	out, err := execute(t, "", scanArgs(writeInput(t, storyFile))...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "711111111", lines[0])
	assert.Equal(t, "123456789", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "888888888 AMB ["), lines[2])
	assert.Equal(t, "1234?678? ILL", lines[3])
	assert.Equal(t, "222222222 ERR", lines[4])
}

func TestScanStdinValidateMode(t *testing.T) {
	out, err := execute(t, storyFile, scanArgs("--mode=validate")...)
	require.NoError(t, err)
	assert.Equal(t, "111111111 ERR\n123456789\n888888888 ERR\n1234?678? ILL\n222222222 ERR\n", out)
}

func TestScanRawMode(t *testing.T) {
	out, err := execute(t, storyFile, scanArgs("--mode=raw")...)
	require.NoError(t, err)
	assert.Equal(t, "111111111\n123456789\n888888888\n1234?678?\n222222222\n", out)
}

func TestScanMalformed(t *testing.T) {
	path := writeInput(t, " _ \n| |\n|_|\n  x\n")
	_, err := execute(t, "", scanArgs(path)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "block 0 at line 1")
}

func TestScanMissingFile(t *testing.T) {
	_, err := execute(t, "", scanArgs(filepath.Join(t.TempDir(), "nope.txt"))...)
	assert.Error(t, err)
}

func TestScanBadMode(t *testing.T) {
	_, err := execute(t, storyFile, scanArgs("--mode=guess")...)
	assert.Error(t, err)
}

func TestScanDebugDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug")
	_, err := execute(t, "", scanArgs("--debug-dir="+dir, "--debug-scale=2", writeInput(t, storyFile))...)
	require.NoError(t, err)
	files, err := filepath.Glob(filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Len(t, files, 5)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "", "check", "345882865", "123456789")
	require.NoError(t, err)
	assert.Equal(t, "345882865 ok\n123456789 ok\n", out)

	out, err = execute(t, "", "check", "664371495", "12345678")
	require.Error(t, err)
	assert.Equal(t, "664371495 invalid\n12345678 invalid\n", out)
}

func TestRef(t *testing.T) {
	out, err := execute(t, "", "ref")
	require.NoError(t, err)
	assert.Contains(t, out, "8   _ ||_|||_|  one off: [0 6 9]")
	assert.Contains(t, out, "2   _ | _|||_   one off: []")
}

func TestSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	_, err := execute(t, "", "sheet", "-o", path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
