package debugger

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_historyAdd(t *testing.T) {
	h := newHistory()

	h.Add("run true")
	h.Add("continue")
	h.Add("continue")
	h.Add("")
	h.Add("quit")

	require.Equal(t, 3, h.Len())
	assert.Equal(t, "quit", h.At(0))
	assert.Equal(t, "continue", h.At(1))
	assert.Equal(t, "run true", h.At(2))
}

func Test_historyLimit(t *testing.T) {
	h := newHistory()
	for i := 0; i < historyLimit+10; i++ {
		h.Add(fmt.Sprintf("command %d", i))
	}

	require.Equal(t, historyLimit, h.Len())
	assert.Equal(t, fmt.Sprintf("command %d", historyLimit+9), h.At(0))
}

func Test_historySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history")

	h := newHistory()
	h.Add("run true")
	h.Add("continue")
	h.Add("quit")
	require.NoError(t, h.save(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run true\ncontinue\nquit\n", string(b))

	loaded := newHistory()
	require.NoError(t, loaded.load(path))
	require.Equal(t, h.Len(), loaded.Len())
	for i := 0; i < h.Len(); i++ {
		assert.Equal(t, h.At(i), loaded.At(i))
	}
}

func Test_historyLoadMissingFile(t *testing.T) {
	h := newHistory()
	require.NoError(t, h.load(filepath.Join(t.TempDir(), "missing")))
	assert.Zero(t, h.Len())
}
