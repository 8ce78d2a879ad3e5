package debugger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

const historyLimit = 1000

// history is a bounded command history. It implements term.History with the
// newest entry at index 0 and collapses consecutive duplicates the way
// interactive shells do.
type history struct {
	entries []string
}

func newHistory() *history {
	return &history{}
}

func (h *history) Add(entry string) {
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
}

func (h *history) Len() int {
	return len(h.entries)
}

func (h *history) At(idx int) string {
	return h.entries[len(h.entries)-1-idx]
}

// load reads one entry per line from path. A missing file is fine.
func (h *history) load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read history file (%s): %w", path, err)
	}

	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		h.Add(line)
	}
	return nil
}

// save writes the whole history atomically, oldest entry first.
func (h *history) save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	var buf bytes.Buffer
	for _, entry := range h.entries {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write history file (%s): %w", path, err)
	}
	return nil
}
