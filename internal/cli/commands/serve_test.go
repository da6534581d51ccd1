package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlconsole/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadDefaults(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	assert.Nil(t, reloadDefaults("", NewServeCommand()))

	file := filepath.Join(t.TempDir(), "sqlconsole.yaml")
	require.NoError(t, os.WriteFile(file, []byte("dsn: sqlite:///one.db\nserver:\n  default_sslmode: disable\n"), 0o600))

	reload := reloadDefaults(file, NewServeCommand())
	require.NotNil(t, reload)

	dsn, mode, err := reload()
	require.NoError(t, err)
	assert.Equal(t, "sqlite:///one.db", dsn)
	assert.Equal(t, "disable", mode)

	require.NoError(t, os.WriteFile(file, []byte("dsn: sqlite:///two.db\n"), 0o600))
	dsn, mode, err = reload()
	require.NoError(t, err)
	assert.Equal(t, "sqlite:///two.db", dsn)
	assert.Equal(t, config.DefaultServerSSLMode, mode)

	require.NoError(t, os.WriteFile(file, []byte("output: nope\n"), 0o600))
	_, _, err = reload()
	assert.Error(t, err)
}
