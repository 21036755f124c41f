// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openai-api-key", "  sk-abc123  \n")
				writeFile(t, dir, "semantic-scholar-api-key", "s2_xyz789")
				return dir
			},
			want: map[string]string{
				"openai-api-key":           "sk-abc123",
				"semantic-scholar-api-key": "s2_xyz789",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "openai-api-key", "sk-real")
				return dir
			},
			want: map[string]string{
				"openai-api-key": "sk-real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "ak_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "ak_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, dir, ".env", "# comment\nOPENAI_API_KEY=sk-from-env\nexport PAPER_ANALYZER_DOTENV_PROBE=\"quoted\"\n")

	got, err := LoadEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", got["OPENAI_API_KEY"])
	assert.Equal(t, "quoted", got["PAPER_ANALYZER_DOTENV_PROBE"])

	_, present := os.LookupEnv("PAPER_ANALYZER_DOTENV_PROBE")
	assert.False(t, present, "LoadEnvFile must not modify the process environment")
}

func TestLoadEnvFileMissing(t *testing.T) {
	got, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetResolve(t *testing.T) {
	key := Key{File: "test-api-key", Env: "PAPER_ANALYZER_TEST_API_KEY"}

	tests := []struct {
		name string
		set  Set
		env  string
		want string
	}{
		{"file wins", Set{Files: map[string]string{"test-api-key": "from-file"}, Dotenv: map[string]string{key.Env: "from-dotenv"}}, "from-env", "from-file"},
		{"environment before dotenv", Set{Dotenv: map[string]string{key.Env: "from-dotenv"}}, "from-env", "from-env"},
		{"dotenv fallback", Set{Dotenv: map[string]string{key.Env: " from-dotenv "}}, "", "from-dotenv"},
		{"missing", Set{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(key.Env, tt.env)
			assert.Equal(t, tt.want, tt.set.Resolve(key))
		})
	}
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	secretsDir := filepath.Join(dir, ".secrets")
	require.NoError(t, os.Mkdir(secretsDir, 0o755))
	writeFile(t, secretsDir, "openai-api-key", "sk-file")
	writeFile(t, dir, ".env", "SEMANTIC_SCHOLAR_API_KEY=s2-env\n")

	set, err := LoadSet(secretsDir, filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Count())
	assert.Equal(t, "sk-file", set.Files["openai-api-key"])
	assert.Equal(t, "s2-env", set.Dotenv["SEMANTIC_SCHOLAR_API_KEY"])
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
