package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		err := LoadEnv(filepath.Join(t.TempDir(), ".env"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("existing variables kept", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("KYCREPORT_TEST_KEPT=file\nKYCREPORT_TEST_NEW=file\n"), 0o600))

		t.Setenv("KYCREPORT_TEST_KEPT", "process")
		t.Setenv("KYCREPORT_TEST_NEW", "")
		require.NoError(t, os.Unsetenv("KYCREPORT_TEST_NEW"))

		require.NoError(t, LoadEnv(envFile))

		assert.Equal(t, "process", os.Getenv("KYCREPORT_TEST_KEPT"))
		assert.Equal(t, "file", os.Getenv("KYCREPORT_TEST_NEW"))
	})
}

func TestLoadRules(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		r, err := LoadRules("")
		require.NoError(t, err)

		assert.True(t, r.IsBanned("BlockDX"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadRules(filepath.Join(t.TempDir(), "rules.toml"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
