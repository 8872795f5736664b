package logging_test

import (
	"testing"

	"github.com/nikolayk812/streamstick/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantError bool
	}{
		{name: "debug: ok", level: "debug"},
		{name: "warn: ok", level: "warn"},
		{name: "unknown level: error", level: "verbose", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := logging.New(tt.level)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.level == "debug", logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}
