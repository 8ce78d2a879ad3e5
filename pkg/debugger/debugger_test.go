package debugger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/chfanghr/stupid-dbg/pkg/log"
)

func TestMain(m *testing.M) {
	if os.Getenv("STUPID_DBG_TEST_VERBOSE_LOGGING") == "1" {
		log.Configure(log.Config{Level: "debug"})
	}
	goleak.VerifyTestMain(m)
}

func programRunningEndlessly() string {
	if p := os.Getenv("STUPID_DBG_TEST_PROGRAM_RUNNING_ENDLESSLY"); p != "" {
		return p
	}
	return "yes"
}

func programExitingImmediately() string {
	if p := os.Getenv("STUPID_DBG_TEST_PROGRAM_EXITING_IMMEDIATELY"); p != "" {
		return p
	}
	return "true"
}

// newTestDebugger wires a session to an in-memory input script and output
// buffer and tears the debuggee down with the test.
func newTestDebugger(t *testing.T, input string) (*Debugger, *bytes.Buffer) {
	t.Helper()

	d := New(Config{Prompt: DefaultPrompt})
	out := &bytes.Buffer{}
	d.in = strings.NewReader(input)
	d.out = out

	t.Cleanup(func() { _ = d.Close() })
	return d, out
}

func Test_executeUnknownCommand(t *testing.T) {
	d, _ := newTestDebugger(t, "")

	quit, err := d.Execute(context.Background(), "inspect")
	assert.False(t, quit)
	require.ErrorContains(t, err, "unknown command: inspect")
}

func Test_executeInvalidQuoting(t *testing.T) {
	d, _ := newTestDebugger(t, "")

	quit, err := d.Execute(context.Background(), `run "unterminated`)
	assert.False(t, quit)
	require.ErrorContains(t, err, "invalid quoting in command")
}

func Test_executeQuit(t *testing.T) {
	d, _ := newTestDebugger(t, "")

	quit, err := d.Execute(context.Background(), "quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func Test_commandsWithoutDebuggeeOnlyWarn(t *testing.T) {
	for _, line := range []string{"detach", "continue", "registers", "status"} {
		t.Run(line, func(t *testing.T) {
			d, _ := newTestDebugger(t, "")

			quit, err := d.Execute(context.Background(), line)
			assert.False(t, quit)
			require.NoError(t, err)
			assert.Nil(t, d.Debuggee())
		})
	}
}

func Test_runRequiresArguments(t *testing.T) {
	d, _ := newTestDebugger(t, "")

	_, err := d.Execute(context.Background(), "run")
	require.EqualError(t, err, "no child argument provided")
}

func Test_attachArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "[INVALID] no pid", line: "attach"},
		{name: "[INVALID] non-numeric pid", line: "attach abc"},
		{name: "[INVALID] too many arguments", line: "attach 1 2"},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDebugger(t, "")

			quit, err := d.Execute(context.Background(), tt.line)
			assert.False(t, quit)
			require.Error(t, err)
			assert.Nil(t, d.Debuggee())
		})
	}
}

func Test_runRefusedWhileDebuggeeExists(t *testing.T) {
	d, _ := newTestDebugger(t, "")
	ctx := context.Background()

	_, err := d.Execute(ctx, "run "+programRunningEndlessly())
	require.NoError(t, err)
	require.NotNil(t, d.Debuggee())
	first := d.Debuggee()

	// Both run and attach only warn and keep the current debuggee.
	quit, err := d.Execute(ctx, "run "+programRunningEndlessly())
	assert.False(t, quit)
	require.NoError(t, err)
	assert.Same(t, first, d.Debuggee())

	quit, err = d.Execute(ctx, "attach 1")
	assert.False(t, quit)
	require.NoError(t, err)
	assert.Same(t, first, d.Debuggee())
}

func Test_sessionFlow(t *testing.T) {
	d, out := newTestDebugger(t, "")
	ctx := context.Background()

	_, err := d.Execute(ctx, "run "+programExitingImmediately())
	require.NoError(t, err)
	require.NotNil(t, d.Debuggee())

	out.Reset()
	_, err = d.Execute(ctx, "registers")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "rax")
	assert.Contains(t, out.String(), "rip")
	assert.NotContains(t, out.String(), "xmm0")

	out.Reset()
	_, err = d.Execute(ctx, "registers --all")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "xmm0")
	assert.Contains(t, out.String(), "dr7")

	out.Reset()
	_, err = d.Execute(ctx, "status")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "state: stopped")

	_, err = d.Execute(ctx, "continue")
	require.NoError(t, err)

	out.Reset()
	_, err = d.Execute(ctx, "status")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "state: exited with status code: 0")

	_, err = d.Execute(ctx, "detach")
	require.NoError(t, err)
	assert.Nil(t, d.Debuggee())

	quit, err := d.Execute(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func Test_replScript(t *testing.T) {
	historyFile := filepath.Join(t.TempDir(), "history")

	d, out := newTestDebugger(t, "run "+programExitingImmediately()+"\n\ncontinue\nstatus\nquit\n")
	d.cfg.HistoryFile = historyFile

	require.NoError(t, d.REPL(context.Background()))
	assert.Nil(t, d.Debuggee())

	assert.GreaterOrEqual(t, strings.Count(out.String(), DefaultPrompt), 5)
	assert.Contains(t, out.String(), "state: exited with status code: 0")

	b, err := os.ReadFile(historyFile)
	require.NoError(t, err)
	assert.Equal(t, "run "+programExitingImmediately()+"\ncontinue\nstatus\nquit\n", string(b))
}

func Test_replEndsOnEndOfInput(t *testing.T) {
	d, out := newTestDebugger(t, "\n\n")

	require.NoError(t, d.REPL(context.Background()))
	assert.Contains(t, out.String(), DefaultPrompt)
}

func Test_replEndsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _ := newTestDebugger(t, "status\nstatus\n")
	require.NoError(t, d.REPL(ctx))
}

func Test_replContinuesPastFailingCommands(t *testing.T) {
	d, out := newTestDebugger(t, "bogus\nstatus\nquit\n")

	require.NoError(t, d.REPL(context.Background()))
	// The failing first command must not end the session.
	assert.GreaterOrEqual(t, strings.Count(out.String(), DefaultPrompt), 3)
}
