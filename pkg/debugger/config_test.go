package debugger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "[VALID] defaults only",
			want: Config{Prompt: "dbg> ", LogLevel: "info"},
		},
		{
			name: "[VALID] config file overrides defaults",
			file: "prompt: \"odb% \"\nlogLevel: debug\nhistoryFile: /tmp/h\n",
			want: Config{Prompt: "odb% ", LogLevel: "debug", HistoryFile: "/tmp/h"},
		},
		{
			name: "[VALID] environment overrides the config file",
			file: "prompt: \"odb% \"\nlogLevel: debug\n",
			env: map[string]string{
				"STUPID_DBG_LOG_LEVEL": "warn",
			},
			want: Config{Prompt: "odb% ", LogLevel: "warn"},
		},
		{
			name: "[VALID] environment alone",
			env: map[string]string{
				"STUPID_DBG_PROMPT":       ">>> ",
				"STUPID_DBG_HISTORY_FILE": "/tmp/history",
			},
			want: Config{Prompt: ">>> ", LogLevel: "info", HistoryFile: "/tmp/history"},
		},
		{
			name:    "[INVALID] malformed yaml",
			file:    "prompt: [unclosed\n",
			wantErr: true,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			// Keep the default config location out of the picture.
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			got, err := LoadConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_LoadConfigExplicitFileMustExist(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	require.Error(t, err)
}

func Test_LoadConfigMissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultPrompt, cfg.Prompt)
}

func Test_DefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.Equal(t, filepath.Join(dir, "stupid-dbg", "config.yml"), DefaultConfigFile())
}
