package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/interfaces/config"
	"github.com/phovious-14/ethglobal-new-delhi-2025-sub000/pkg/types"
)

func TestStart_WithoutAPI(t *testing.T) {
	t.Setenv("DRIP_CLI_MODE", "true")

	var provider config.Provider
	a, err := start([]fx.Option{fx.Populate(&provider)},
		WithAppConfig(&types.AppConfig{
			AppName:     types.StringPtr("drip-test"),
			Environment: types.StringPtr("test"),
		}),
		WithoutAPI(),
	)
	require.NoError(t, err)

	assert.Equal(t, "drip-test", provider.GetAppName())
	assert.Equal(t, "test", provider.GetEnvironment())
	_, err = provider.GetChains().Lookup(84532)
	assert.NoError(t, err)

	require.NoError(t, a.Stop())
}

func TestStart_InvalidConfig(t *testing.T) {
	t.Setenv("DRIP_CLI_MODE", "true")

	_, err := Start(
		WithAppConfig(&types.AppConfig{Environment: types.StringPtr("staging")}),
		WithoutAPI(),
	)
	assert.Error(t, err)

	_, err = Start(WithEmbeddedConfig([]byte("{not json")), WithoutAPI())
	assert.ErrorIs(t, err, ErrConfigFormat)
}
