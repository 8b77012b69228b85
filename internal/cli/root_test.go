package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/autopost/internal/engine"
	"github.com/maheshrc27/autopost/pkg/utils"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "autopost", cmd.Use)
	assert.Contains(t, cmd.Long, "X accounts")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"serve", "migrate", "publish", "token"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "config.yaml", configFlag.DefValue)
}

func TestTokenCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	tokenCmd, _, err := cmd.Find([]string{"token"})
	require.NoError(t, err)

	ttlFlag := tokenCmd.Flags().Lookup("ttl")
	require.NotNil(t, ttlFlag)
	assert.Equal(t, "0s", ttlFlag.DefValue)
}

// sqliteEnv points the config at a fresh sqlite file and a missing YAML file.
func sqliteEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_URL", filepath.Join(dir, "autopost.db"))
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("LOG_LEVEL", "error")
	return filepath.Join(dir, "missing.yaml")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	configPath := sqliteEnv(t)

	out, err := execute(t, "--config", configPath, "token", "42", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := utils.ValidateToken("test-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenCommand_RejectsNonNumericUser(t *testing.T) {
	configPath := sqliteEnv(t)

	_, err := execute(t, "--config", configPath, "token", "alice")
	assert.ErrorContains(t, err, "numeric")
}

func TestMigrateCommand(t *testing.T) {
	configPath := sqliteEnv(t)

	out, err := execute(t, "--config", configPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema is up to date")

	// second run against the same file is a no-op
	_, err = execute(t, "--config", configPath, "migrate")
	require.NoError(t, err)
}

func TestPublishCommand_UnknownPost(t *testing.T) {
	configPath := sqliteEnv(t)

	out, err := execute(t, "--config", configPath, "publish", "does-not-exist")
	assert.ErrorIs(t, err, engine.ErrPostNotFound)
	assert.Empty(t, out)
}

func TestPublishCommand_RequiresPostID(t *testing.T) {
	_, err := execute(t, "publish")
	assert.Error(t, err)
}
