package debugger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// lineReader yields one input line per call, io.EOF when the input ends.
type lineReader interface {
	ReadLine() (string, error)
}

type readWriter struct {
	io.Reader
	io.Writer
}

// termReader reads through x/term's line editor. The terminal is switched
// into raw mode only for the duration of each read so command execution and
// logging happen with normal terminal semantics.
type termReader struct {
	term *term.Terminal
	fd   int
}

func newTermReader(in *os.File, out io.Writer, prompt string, hist *history) *termReader {
	t := term.NewTerminal(readWriter{in, out}, prompt)
	t.History = hist
	return &termReader{term: t, fd: int(in.Fd())}
}

func (r *termReader) ReadLine() (string, error) {
	oldState, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("failed to switch terminal to raw mode: %w", err)
	}
	defer term.Restore(r.fd, oldState)

	return r.term.ReadLine()
}

// plainReader is the fallback for non-terminal input: plain buffered lines,
// no editing, no history recall.
type plainReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func newPlainReader(in io.Reader, out io.Writer, prompt string) *plainReader {
	return &plainReader{scanner: bufio.NewScanner(in), out: out, prompt: prompt}
}

func (r *plainReader) ReadLine() (string, error) {
	fmt.Fprint(r.out, r.prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (d *Debugger) newLineReader(hist *history) lineReader {
	if f, ok := d.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newTermReader(f, d.out, d.cfg.Prompt, hist)
	}
	return newPlainReader(d.in, d.out, d.cfg.Prompt)
}

// REPL reads and executes commands until quit, end of input or context
// cancellation, which takes effect at the next prompt. The current debuggee,
// if any, is closed before REPL returns.
func (d *Debugger) REPL(ctx context.Context) error {
	defer func() {
		if err := d.Close(); err != nil {
			d.log.Warn().Err(err).Msg("failed to close debuggee")
		}
	}()

	hist := newHistory()
	if d.cfg.HistoryFile != "" {
		if err := hist.load(d.cfg.HistoryFile); err != nil {
			d.log.Warn().Err(err).Msg("unable to load history file")
		}
	}

	reader := d.newLineReader(hist)

	for ctx.Err() == nil {
		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.log.Info().Msg("end of input")
			} else {
				d.log.Error().Err(err).Msg("unknown readline error")
			}
			break
		}

		// Failing commands are kept in history too; the terminal reader has
		// already added the raw line and the duplicate collapses.
		hist.Add(line)

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		quit, err := d.Execute(ctx, line)
		if err != nil {
			d.log.Error().Err(err).Msg("failed to execute command")
		}
		if quit {
			break
		}
	}
	if ctx.Err() != nil {
		d.log.Info().Msg("session canceled")
	}

	if d.cfg.HistoryFile != "" {
		if err := hist.save(d.cfg.HistoryFile); err != nil {
			d.log.Warn().Err(err).Msg("unable to save history file")
		}
	}

	return nil
}
