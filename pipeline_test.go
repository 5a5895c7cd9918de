package psoscreen

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/psoscreen/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()

	for i, file := range []string{
		"PSO_SCREEN_1.txt",
		"a/PSO3_SCREEN_2.txt",
		"a/b/PSO_DC_SCREEN_3.vms",
		"a/b/c/PSO_SCREEN_4",
	} {
		if i == 2 {
			writeFile(t, filepath.Join(dir, file), dreamcastCapture(0x80))
			continue
		}
		writeFile(t, filepath.Join(dir, file), gameCubeCapture(t, uint16(i)))
	}

	// Ignored: unrecognised, hidden, truncated
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("hello"))
	writeFile(t, filepath.Join(dir, ".hidden/PSO_SCREEN_5.txt"), gameCubeCapture(t, 0))
	writeFile(t, filepath.Join(dir, "PSO_SCREEN_6.txt"), []byte("TTTT"))

	p := New(nil, log.New(io.Discard, "", 0))
	require.NoError(t, p.Scan(dir, &ConvertOptions{Output: output.Options{Format: output.GIF}}))

	for _, file := range []string{
		"PSO_SCREEN_1.gif",
		"a/PSO3_SCREEN_2.gif",
		"a/b/PSO_DC_SCREEN_3.gif",
		"a/b/c/PSO_SCREEN_4.gif",
	} {
		_, name := decodeFile(t, filepath.Join(dir, file))
		assert.Equal(t, "gif", name)
	}

	for _, file := range []string{
		"notes.gif",
		".hidden/PSO_SCREEN_5.gif",
		"PSO_SCREEN_6.gif",
	} {
		_, err := os.Stat(filepath.Join(dir, file))
		assert.True(t, os.IsNotExist(err), file)
	}

	// A second scan leaves the previous output alone
	require.NoError(t, p.Scan(dir, nil))
	_, err := os.Stat(filepath.Join(dir, "PSO_SCREEN_1.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "PSO_SCREEN_1.gif.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestScanMissing(t *testing.T) {
	p := New(nil, log.New(io.Discard, "", 0))
	assert.Error(t, p.Scan(filepath.Join(t.TempDir(), "missing"), nil))
}
