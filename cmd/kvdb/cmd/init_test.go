package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexkv/kvdb/pkg/config"
)

func TestInitCommand_BootstrapsConfig(t *testing.T) {
	tmpDir := t.TempDir()

	origConfigPath, origDBPath, origForce := configPath, dbPath, initForce
	t.Cleanup(func() {
		configPath, dbPath, initForce = origConfigPath, origDBPath, origForce
	})

	configPath = filepath.Join(tmpDir, "kvdb.yaml")
	dbPath = filepath.Join(tmpDir, "kvdb.db")
	initForce = false

	initCmd.Run(initCmd, nil)

	assert.FileExists(t, configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.Path)
	assert.NotEmpty(t, cfg.APIKey)
	assert.Equal(t, 8080, cfg.Port)
}
