package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/kycreport/server/config"
	"github.com/sig-0/kycreport/server/mock"
)

func TestServer_New(t *testing.T) {
	t.Parallel()

	t.Run("default server", func(t *testing.T) {
		t.Parallel()

		s, err := New(&mock.Source{})
		require.NoError(t, err)

		assert.NotNil(t, s.logger)
		assert.Equal(t, config.DefaultListenAddress, s.config.ListenAddress)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.ListenAddress = "localhost"

		_, err := New(&mock.Source{}, WithConfig(cfg))

		assert.ErrorIs(t, err, config.ErrInvalidListenAddress)
	})
}
