package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSizeCmd(t *testing.T) {
	out, err := run(t, "size", "1023", "1536", "10MiB")
	require.NoError(t, err)
	assert.Equal(t, "1023B\n1.5KB\n10.0MB\n", out)

	_, err = run(t, "size", "lots")
	assert.ErrorContains(t, err, "invalid size")
}

func TestDurationCmd(t *testing.T) {
	out, err := run(t, "duration", "999", "1500", "90m")
	require.NoError(t, err)
	assert.Equal(t, "999毫秒\n1.5秒\n1.5小时\n", out)

	out, err = run(t, "duration", "--english", "--", "-60000")
	require.NoError(t, err)
	assert.Equal(t, "-1.0m\n", out)
}

func TestIDCmd(t *testing.T) {
	out, err := run(t, "id", "--length", "6", "--count", "3")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 3)
	for _, id := range lines {
		assert.Regexp(t, regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`), id)
	}

	_, err = run(t, "id", "--length", "1")
	assert.Error(t, err)
}

func TestFormatsCmd(t *testing.T) {
	out, err := run(t, "formats")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^tgz\s+\.tgz\s+gzip\s+tar\.gz$`, out)
	assert.Regexp(t, `(?m)^tlz\s+\.tlz\s+-\s+tar\.lz$`, out)
}

func TestGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "报告.txt")
	require.NoError(t, os.WriteFile(src, []byte(strings.Repeat("kit ", 512)), 0o644))

	out, err := run(t, "gzip", src, "--charset", "gbk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, src+".gz\t"))

	restored := filepath.Join(dir, "restored")
	out, err = run(t, "gunzip", src+".gz", "--charset", "gbk", "--dir", restored)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, filepath.Join(restored, "报告.txt")+"\t"))

	data, err := os.ReadFile(filepath.Join(restored, "报告.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("kit ", 512), string(data))
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id:\n  length: 4\n"), 0o644))

	out, err := run(t, "--config", path, "id")
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z]{2}[0-9]{2}\n$`, out)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "id")
	assert.Error(t, err)
}
