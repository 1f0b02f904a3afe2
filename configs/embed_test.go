package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/app"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/internal/config"
)

func TestEmbeddedConfigsParse(t *testing.T) {
	for _, env := range []string{"dev", "prod"} {
		t.Run(env, func(t *testing.T) {
			data, err := Get(env)
			require.NoError(t, err)

			cfg, err := app.ParseConfig(data)
			require.NoError(t, err)

			provider := config.NewProvider(cfg)
			require.NoError(t, provider.Validate())
			assert.Equal(t, env, provider.GetEnvironment())
			assert.Equal(t, 8080, provider.GetAPI().HTTP.Port)
		})
	}
}

func TestGetUnknownEnvironment(t *testing.T) {
	_, err := Get("staging")
	assert.Error(t, err)
}
