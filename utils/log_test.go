package utils_test

import (
	"testing"

	"github.com/NethermindEth/starkstore/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	for level, str := range map[utils.LogLevel]string{
		utils.DEBUG: "debug",
		utils.INFO:  "info",
		utils.WARN:  "warn",
		utils.ERROR: "error",
		utils.FATAL: "fatal",
	} {
		t.Run(str, func(t *testing.T) {
			assert.Equal(t, str, level.String())

			var parsed utils.LogLevel
			require.NoError(t, parsed.Set(str))
			assert.Equal(t, level, parsed)
		})
	}
}

func TestLogLevelSetUnknown(t *testing.T) {
	var level utils.LogLevel
	assert.ErrorIs(t, level.Set("trace"), utils.ErrUnknownLogLevel)
}

func TestNewZapLogger(t *testing.T) {
	for _, colour := range []bool{true, false} {
		log, err := utils.NewZapLogger(utils.INFO, colour)
		require.NoError(t, err)
		assert.NotNil(t, log)
	}
}
